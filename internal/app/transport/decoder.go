package transport

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/exception"
	httptransport "github.com/ijalalfrz/skyswap-booking-client/internal/pkg/transport/http"
)

var ErrInvalidPassengerIndex = exception.ApplicationError{
	Message:    "invalid passenger index",
	StatusCode: http.StatusBadRequest,
}

// decodeUpdatePassengerRequest reads the passenger from the body and its
// position from the {index} path parameter.
func decodeUpdatePassengerRequest(ctx context.Context, req *http.Request) (interface{}, error) {
	index, err := strconv.Atoi(chi.URLParam(req, "index"))
	if err != nil {
		return nil, ErrInvalidPassengerIndex.WithCause(fmt.Errorf("parse index: %w", err))
	}

	decoded, err := httptransport.DecodeRequest[dto.UpdatePassengerRequest](ctx, req)
	if err != nil {
		return nil, err
	}

	request, _ := decoded.(*dto.UpdatePassengerRequest)
	request.Index = index

	return request, nil
}
