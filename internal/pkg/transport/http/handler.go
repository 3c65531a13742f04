package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/exception"
)

var ErrInvalidRequestBody = exception.ApplicationError{
	Message:    "invalid request body",
	StatusCode: http.StatusBadRequest,
}

// MakeHandlerFunc serves endpt with the given request decoder and response
// encoder. Errors are written by ErrorResponse.
func MakeHandlerFunc(
	endpt endpoint.Endpoint,
	decoder kithttp.DecodeRequestFunc,
	encoder kithttp.EncodeResponseFunc,
) http.HandlerFunc {
	server := kithttp.NewServer(
		endpt,
		decoder,
		encoder,
		kithttp.ServerErrorEncoder(ErrorResponse),
	)

	return server.ServeHTTP
}

// DecodeRequest decodes the JSON body into a *T. An empty body decodes to
// the zero T. When *T implements render.Binder its Bind runs afterwards.
func DecodeRequest[T any](_ context.Context, req *http.Request) (interface{}, error) {
	var request T

	if err := render.DecodeJSON(req.Body, &request); err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrInvalidRequestBody.WithCause(err)
	}

	if binder, ok := any(&request).(render.Binder); ok {
		if err := binder.Bind(req); err != nil {
			return nil, err
		}
	}

	return &request, nil
}

// DecodeEmpty ignores the request body.
func DecodeEmpty(_ context.Context, _ *http.Request) (interface{}, error) {
	return nil, nil
}
