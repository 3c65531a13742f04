package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/exception"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/receipt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	decodeRequest := func(body string, want *dto.NavigateRequest, wantStatus int) func(t *testing.T) {
		return func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

			got, err := DecodeRequest[dto.NavigateRequest](context.Background(), req)
			if wantStatus != 0 {
				var appErr exception.ApplicationError
				require.True(t, errors.As(err, &appErr), "expected application error, got %v", err)
				assert.Equal(t, wantStatus, appErr.StatusCode)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}

	t.Run("valid", decodeRequest(`{"step":"history"}`, &dto.NavigateRequest{Step: "history"}, 0))
	t.Run("malformed_json", decodeRequest(`{"step":`, nil, http.StatusBadRequest))
	t.Run("empty_body_fails_binding", decodeRequest(``, nil, http.StatusBadRequest))
	t.Run("unknown_step", decodeRequest(`{"step":"payment"}`, nil, http.StatusBadRequest))
}

func TestErrorResponse(t *testing.T) {
	errorRequest := func(err error, wantStatus int, wantMessage string) func(t *testing.T) {
		return func(t *testing.T) {
			rec := httptest.NewRecorder()

			ErrorResponse(context.Background(), err, rec)

			assert.Equal(t, wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, wantMessage, body.Error)
		}
	}

	conflict := exception.ApplicationError{Message: "invalid transition", StatusCode: http.StatusConflict}

	t.Run("application_error", errorRequest(conflict, http.StatusConflict, "invalid transition"))
	t.Run("wrapped_application_error", errorRequest(
		errors.Join(errors.New("context"), conflict.WithCause(errors.New("on step home"))),
		http.StatusConflict, "invalid transition"))
	t.Run("unknown_error", errorRequest(errors.New("boom"), http.StatusInternalServerError, "boom"))
}

func TestReceiptResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	r := receipt.Receipt{
		BookingID:  "PNRab12cd",
		Flight:     "AI101",
		Airline:    "AirIndia",
		Passengers: []dto.Passenger{{Name: "Asha", Age: "31", Gender: dto.GenderFemale}},
		Time:       "10/19/2026, 3:04:05 PM",
	}

	require.NoError(t, ReceiptResponse(context.Background(), rec, r))

	assert.Equal(t, "attachment; filename=PNRab12cd_receipt.json", rec.Header().Get("Content-Disposition"))

	want, err := r.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(want), rec.Body.String())

	assert.Error(t, ReceiptResponse(context.Background(), httptest.NewRecorder(), "not a receipt"))
}

func TestReceiptResponse_FileName(t *testing.T) {
	fileNameRequest := func(pnr, wantDisposition string, wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			rec := httptest.NewRecorder()

			err := ReceiptResponse(context.Background(), rec, receipt.Receipt{BookingID: pnr})
			if wantErr != nil {
				assert.ErrorIs(t, err, wantErr)
				assert.Empty(t, rec.Header().Get("Content-Disposition"))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, wantDisposition, rec.Header().Get("Content-Disposition"))
		}
	}

	t.Run("quoted_when_not_a_token", fileNameRequest("PNR 42", `attachment; filename="PNR 42_receipt.json"`, nil))
	t.Run("quote_rejected", fileNameRequest(`PNR"42`, "", receipt.ErrInvalidPNR))
	t.Run("path_rejected", fileNameRequest("../../etc/evil", "", receipt.ErrInvalidPNR))
}
