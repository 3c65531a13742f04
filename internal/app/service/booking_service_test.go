//go:build unit

package service

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/backend"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/booking"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/exception"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/receipt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

func catalog() []dto.Flight {
	return []dto.Flight{
		{
			FlightID:           1,
			FlightNumber:       "AI101",
			BaseFare:           5000,
			SourceAirport:      dto.Airport{IATACode: "DEL"},
			DestinationAirport: dto.Airport{IATACode: "BOM"},
			Airline:            dto.Airline{AirlineName: "AirIndia"},
		},
		{
			FlightID:           2,
			FlightNumber:       "6E202",
			BaseFare:           3100,
			SourceAirport:      dto.Airport{IATACode: "BLR"},
			DestinationAirport: dto.Airport{IATACode: "DEL"},
			Airline:            dto.Airline{AirlineName: "Indigo"},
		},
		{
			FlightID:           3,
			FlightNumber:       "SG303",
			BaseFare:           4200,
			SourceAirport:      dto.Airport{IATACode: "DEL"},
			DestinationAirport: dto.Airport{IATACode: "GOI"},
			Airline:            dto.Airline{AirlineName: "SpiceJet"},
		},
	}
}

type mockField struct {
	backend  *MockBookingBackend
	exporter *MockReceiptExporter
}

func newService(t *testing.T) (*BookingService, mockField) {
	t.Helper()
	require.NoError(t, dto.InitValidator())

	m := mockField{
		backend:  NewMockBookingBackend(t),
		exporter: NewMockReceiptExporter(t),
	}

	s := NewBookingService(m.backend, m.exporter, 2)
	s.Now = func() time.Time { return fixedNow }
	s.NewPNR = func() string { return "PNRab12cd" }

	return s, m
}

func expectCatalog(m mockField) {
	m.backend.On("ListFlights", mock.Anything).Return(catalog(), nil)
	m.backend.On("GetPricing", mock.Anything, 1).Return(5400.0, nil)
	m.backend.On("GetPricing", mock.Anything, 2).Return(0.0, nil)
	m.backend.On("GetPricing", mock.Anything, 3).Return(0.0, backend.ErrBackendUnavailable)
}

// paymentStep loads the catalog and walks to the payment step with one
// named passenger on flight 1.
func paymentStep(t *testing.T, s *BookingService) booking.State {
	t.Helper()
	ctx := context.Background()

	_, err := s.LoadCatalog(ctx)
	require.NoError(t, err)

	_, err = s.Navigate(ctx, booking.StepSearch)
	require.NoError(t, err)

	_, err = s.StartBooking(ctx, 1)
	require.NoError(t, err)

	_, err = s.UpdatePassenger(ctx, 0, dto.Passenger{Name: "Asha", Age: "31", Gender: dto.GenderFemale})
	require.NoError(t, err)

	state, err := s.ContinueToPayment(ctx)
	require.NoError(t, err)

	return state
}

var validPayment = dto.PaymentData{CardNumber: "4111111111111111", Expiry: "12/29", CVV: "123"}

func TestBookingService_LoadCatalog(t *testing.T) {
	loadRequest := func(setupMock func(m mockField), wantFares []float64, wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			s, m := newService(t)
			setupMock(m)

			got, err := s.LoadCatalog(context.Background())
			assert.False(t, got.Loading)

			if wantErr != nil {
				assert.ErrorIs(t, err, wantErr)
				assert.Empty(t, got.Results)
				return
			}

			require.NoError(t, err)

			fares := make([]float64, 0, len(got.Results))
			for _, f := range got.Results {
				fares = append(fares, f.BaseFare)
			}

			if diff := cmp.Diff(wantFares, fares); diff != "" {
				t.Fatalf("fares mismatch (-want +got):\n%s", diff)
			}

			assert.Equal(t, got.Results, got.Flights)
		}
	}

	t.Run("price_overlay_in_backend_order", loadRequest(expectCatalog, []float64{5400, 3100, 4200}, nil))

	t.Run("list_failure", loadRequest(func(m mockField) {
		m.backend.On("ListFlights", mock.Anything).Return(nil, backend.ErrBackendUnavailable)
	}, nil, backend.ErrBackendUnavailable))

	t.Run("empty_catalog", loadRequest(func(m mockField) {
		m.backend.On("ListFlights", mock.Anything).Return([]dto.Flight{}, nil)
	}, []float64{}, nil))
}

func TestBookingService_LoadCatalog_FailureKeepsPreviousCatalog(t *testing.T) {
	s, m := newService(t)
	expectCatalog(m)

	first, err := s.LoadCatalog(context.Background())
	require.NoError(t, err)

	m.backend.ExpectedCalls = nil
	m.backend.On("ListFlights", mock.Anything).Return(nil, backend.ErrUnexpectedStatus)

	second, err := s.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, backend.ErrUnexpectedStatus)

	if diff := cmp.Diff(first.Flights, second.Flights); diff != "" {
		t.Fatalf("catalog changed after failed load (-before +after):\n%s", diff)
	}
}

func TestBookingService_SearchIsIdempotentAcrossLoads(t *testing.T) {
	s, m := newService(t)
	expectCatalog(m)
	ctx := context.Background()

	query := dto.Query{From: " del "}

	_, err := s.LoadCatalog(ctx)
	require.NoError(t, err)
	_, err = s.Navigate(ctx, booking.StepSearch)
	require.NoError(t, err)
	first, err := s.Search(ctx, query)
	require.NoError(t, err)

	_, err = s.LoadCatalog(ctx)
	require.NoError(t, err)
	second, err := s.Search(ctx, query)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Results, second.Results); diff != "" {
		t.Fatalf("results differ (-first +second):\n%s", diff)
	}

	require.Len(t, first.Results, 2)
	assert.Equal(t, "AI101", first.Results[0].FlightNumber)
	assert.Equal(t, "SG303", first.Results[1].FlightNumber)
	assert.Equal(t, booking.StepSearch, second.Step)
}

func TestBookingService_SubmitPayment(t *testing.T) {
	wantReq := dto.ReservationRequest{
		FlightID:   1,
		Passengers: []dto.Passenger{{Name: "Asha", Age: "31", Gender: dto.GenderFemale}},
	}

	submitRequest := func(
		payment dto.PaymentData,
		setupMock func(m mockField),
		wantPNR string,
		wantRecord dto.BookingRecord,
		wantStatus int,
	) func(t *testing.T) {
		return func(t *testing.T) {
			s, m := newService(t)
			expectCatalog(m)
			setupMock(m)

			before := paymentStep(t, s)

			got, err := s.SubmitPayment(context.Background(), payment)
			if wantStatus != 0 {
				var appErr exception.ApplicationError
				require.True(t, errors.As(err, &appErr), "expected application error, got %v", err)
				assert.Equal(t, wantStatus, appErr.StatusCode)

				assert.Equal(t, before.Step, got.Step)
				assert.Equal(t, before.History, got.History)
				assert.Empty(t, got.LastPNR)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, booking.StepDone, got.Step)
			assert.Equal(t, wantPNR, got.LastPNR)
			assert.Equal(t, dto.PaymentData{}, got.Payment)

			require.Len(t, got.History, 1)
			if diff := cmp.Diff(wantRecord, got.History[0]); diff != "" {
				t.Fatalf("history record mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("numeric_booking_id", submitRequest(
		validPayment,
		func(m mockField) {
			m.backend.On("Reserve", mock.Anything, wantReq).Return(dto.BookingRecord{
				BookingID:   "12",
				FlightID:    1,
				BookingDate: "2026-10-19T10:00:00",
				TotalFare:   5400,
				Status:      "Confirmed",
			}, nil)
		},
		"12",
		dto.BookingRecord{
			BookingID:    "12",
			FlightID:     1,
			FlightNumber: "AI101",
			Route:        "DEL → BOM",
			BookingDate:  "2026-10-19T10:00:00",
			TotalFare:    5400,
			Status:       "Confirmed",
		},
		0,
	))

	t.Run("fallback_pnr", submitRequest(
		validPayment,
		func(m mockField) {
			m.backend.On("Reserve", mock.Anything, wantReq).Return(dto.BookingRecord{}, nil)
		},
		"PNRab12cd",
		dto.BookingRecord{
			BookingID:    "PNRab12cd",
			FlightID:     1,
			FlightNumber: "AI101",
			Route:        "DEL → BOM",
			BookingDate:  fixedNow.Format(time.RFC3339),
		},
		0,
	))

	t.Run("zero_booking_id", submitRequest(
		validPayment,
		func(m mockField) {
			m.backend.On("Reserve", mock.Anything, wantReq).Return(dto.BookingRecord{
				BookingID: "0",
				FlightID:  1,
				Status:    "Confirmed",
			}, nil)
		},
		"PNRab12cd",
		dto.BookingRecord{
			BookingID:    "PNRab12cd",
			FlightID:     1,
			FlightNumber: "AI101",
			Route:        "DEL → BOM",
			BookingDate:  fixedNow.Format(time.RFC3339),
			Status:       "Confirmed",
		},
		0,
	))

	t.Run("backend_failure", submitRequest(
		validPayment,
		func(m mockField) {
			m.backend.On("Reserve", mock.Anything, wantReq).
				Return(dto.BookingRecord{}, backend.ErrUnexpectedStatus.WithCause(errors.New("status 500")))
		},
		"", dto.BookingRecord{}, http.StatusBadGateway,
	))

	t.Run("missing_cvv", submitRequest(
		dto.PaymentData{CardNumber: "4111", Expiry: "12/29"},
		func(mockField) {},
		"", dto.BookingRecord{}, http.StatusBadRequest,
	))
}

func TestBookingService_SubmitPayment_WrongStep(t *testing.T) {
	s, _ := newService(t)

	_, err := s.SubmitPayment(context.Background(), validPayment)
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
}

func TestBookingService_ResubmitAfterFailure(t *testing.T) {
	s, m := newService(t)
	expectCatalog(m)
	m.backend.On("Reserve", mock.Anything, mock.Anything).
		Return(dto.BookingRecord{}, backend.ErrBackendUnavailable).Once()
	m.backend.On("Reserve", mock.Anything, mock.Anything).
		Return(dto.BookingRecord{BookingID: "7"}, nil).Once()

	paymentStep(t, s)

	_, err := s.SubmitPayment(context.Background(), validPayment)
	require.ErrorIs(t, err, backend.ErrBackendUnavailable)

	got, err := s.SubmitPayment(context.Background(), validPayment)
	require.NoError(t, err)
	assert.Equal(t, "7", got.LastPNR)
	assert.Len(t, got.History, 1)
}

func TestBookingService_BookAnother(t *testing.T) {
	s, m := newService(t)
	expectCatalog(m)
	m.backend.On("Reserve", mock.Anything, mock.Anything).Return(dto.BookingRecord{BookingID: "1"}, nil).Once()
	m.backend.On("Reserve", mock.Anything, mock.Anything).Return(dto.BookingRecord{BookingID: "2"}, nil).Once()
	ctx := context.Background()

	paymentStep(t, s)
	_, err := s.SubmitPayment(ctx, validPayment)
	require.NoError(t, err)

	state, err := s.BookAnother(ctx)
	require.NoError(t, err)
	assert.Equal(t, booking.StepSearch, state.Step)

	_, err = s.StartBooking(ctx, 2)
	require.NoError(t, err)
	_, err = s.AddPassenger(ctx)
	require.NoError(t, err)
	_, err = s.ContinueToPayment(ctx)
	require.NoError(t, err)

	state, err = s.SubmitPayment(ctx, validPayment)
	require.NoError(t, err)

	require.Len(t, state.History, 2)
	assert.Equal(t, dto.BookingID("2"), state.History[0].BookingID)
	assert.Equal(t, "BLR → DEL", state.History[0].Route)
	assert.Equal(t, dto.BookingID("1"), state.History[1].BookingID)
}

func TestBookingService_Navigate(t *testing.T) {
	navigateRequest := func(start []booking.Step, to booking.Step, want booking.Step, wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			s, _ := newService(t)
			ctx := context.Background()

			for _, step := range start {
				_, err := s.Navigate(ctx, step)
				require.NoError(t, err)
			}

			got, err := s.Navigate(ctx, to)
			if wantErr != nil {
				assert.ErrorIs(t, err, wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, want, got.Step)
		}
	}

	t.Run("search_flights_button", navigateRequest(nil, booking.StepSearch, booking.StepSearch, nil))
	t.Run("history", navigateRequest(nil, booking.StepHistory, booking.StepHistory, nil))
	t.Run("history_to_search", navigateRequest([]booking.Step{booking.StepHistory}, booking.StepSearch, booking.StepSearch, nil))
	t.Run("home", navigateRequest([]booking.Step{booking.StepHistory}, booking.StepHome, booking.StepHome, nil))
	t.Run("payment_not_reachable", navigateRequest(nil, booking.StepPayment, "", booking.ErrInvalidStep))
}

func TestBookingService_Receipt(t *testing.T) {
	s, m := newService(t)
	expectCatalog(m)
	m.backend.On("Reserve", mock.Anything, mock.Anything).Return(dto.BookingRecord{BookingID: "42"}, nil)

	_, err := s.Receipt(context.Background())
	require.ErrorIs(t, err, booking.ErrNoConfirmedBooking)

	paymentStep(t, s)
	_, err = s.SubmitPayment(context.Background(), validPayment)
	require.NoError(t, err)

	want := receipt.Receipt{
		BookingID:  "42",
		Flight:     "AI101",
		Airline:    "AirIndia",
		Passengers: []dto.Passenger{{Name: "Asha", Age: "31", Gender: dto.GenderFemale}},
		Time:       "10/19/2026, 3:04:05 PM",
	}

	got, err := s.Receipt(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Receipt() mismatch (-want +got):\n%s", diff)
	}

	m.exporter.On("Export", want).Return("receipts/42_receipt.json", nil)

	path, err := s.ExportReceipt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "receipts/42_receipt.json", path)
}

func TestNewFallbackPNR(t *testing.T) {
	pattern := regexp.MustCompile(`^PNR[0-9a-z]{6}$`)

	for range 20 {
		pnr := NewFallbackPNR()
		assert.Regexp(t, pattern, pnr)
	}
}
