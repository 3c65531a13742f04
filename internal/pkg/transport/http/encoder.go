package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/exception"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/receipt"
)

// ResponseWithBody is the common method to encode all response types to the client.
func ResponseWithBody(_ context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("encode response body: %w", err)
	}

	return nil
}

// CreatedResponse writes response with status 201.
func CreatedResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("encode response body: %w", err)
	}

	return nil
}

// ReceiptResponse sends a receipt as a JSON file download named
// {PNR}_receipt.json.
func ReceiptResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	r, ok := response.(receipt.Receipt)
	if !ok {
		return fmt.Errorf("encode receipt: unexpected type %T", response)
	}

	if err := receipt.ValidatePNR(r.BookingID); err != nil {
		return err
	}

	data, err := r.Marshal()
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": receipt.FileName(r.BookingID)}))

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}

	return nil
}

// ErrorResponse encodes the error response to the client. it will check if it's a sentinel error or unknown error.
func ErrorResponse(ctx context.Context, err error, respWriter http.ResponseWriter) {
	var (
		appErr  exception.ApplicationError
		message string
		status  int
	)

	if errors.As(err, &appErr) {
		status = appErr.ErrorCode()
		message = appErr.Message

		if status >= http.StatusInternalServerError {
			slog.WarnContext(ctx, message, slog.String("error", err.Error()))
		}
	} else {
		status = http.StatusInternalServerError
		message = err.Error()

		slog.ErrorContext(ctx, message, slog.Any("error", err))
	}

	respWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	respWriter.WriteHeader(status)

	//nolint:errcheck,errchkjson
	json.NewEncoder(respWriter).Encode(dto.ErrorResponse{
		Error: message,
	})
}
