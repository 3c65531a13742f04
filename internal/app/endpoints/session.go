package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/booking"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/receipt"
)

var errInvalidType = errors.New("invalid type")

type SessionService interface {
	Snapshot() booking.State
	LoadCatalog(ctx context.Context) (booking.State, error)
	Navigate(ctx context.Context, step booking.Step) (booking.State, error)
	Search(ctx context.Context, query dto.Query) (booking.State, error)
	StartBooking(ctx context.Context, flightID int) (booking.State, error)
	AddPassenger(ctx context.Context) (booking.State, error)
	UpdatePassenger(ctx context.Context, index int, passenger dto.Passenger) (booking.State, error)
	ContinueToPayment(ctx context.Context) (booking.State, error)
	SubmitPayment(ctx context.Context, payment dto.PaymentData) (booking.State, error)
	BookAnother(ctx context.Context) (booking.State, error)
	Receipt(ctx context.Context) (receipt.Receipt, error)
	ExportReceipt(ctx context.Context) (string, error)
}

type SessionEndpoint struct {
	Snapshot          endpoint.Endpoint
	ReloadCatalog     endpoint.Endpoint
	Navigate          endpoint.Endpoint
	Search            endpoint.Endpoint
	StartBooking      endpoint.Endpoint
	AddPassenger      endpoint.Endpoint
	UpdatePassenger   endpoint.Endpoint
	ContinueToPayment endpoint.Endpoint
	SubmitPayment     endpoint.Endpoint
	BookAnother       endpoint.Endpoint
	Receipt           endpoint.Endpoint
	ExportReceipt     endpoint.Endpoint
}

func MakeSessionEndpoint(service SessionService) SessionEndpoint {
	return SessionEndpoint{
		Snapshot: func(_ context.Context, _ interface{}) (interface{}, error) {
			return service.Snapshot(), nil
		},
		ReloadCatalog:     makeActionEndpoint(service.LoadCatalog),
		Navigate:          makeNavigateEndpoint(service),
		Search:            makeSearchEndpoint(service),
		StartBooking:      makeStartBookingEndpoint(service),
		AddPassenger:      makeActionEndpoint(service.AddPassenger),
		UpdatePassenger:   makeUpdatePassengerEndpoint(service),
		ContinueToPayment: makeActionEndpoint(service.ContinueToPayment),
		SubmitPayment:     makeSubmitPaymentEndpoint(service),
		BookAnother:       makeActionEndpoint(service.BookAnother),
		Receipt:           makeReceiptEndpoint(service),
		ExportReceipt:     makeExportReceiptEndpoint(service),
	}
}

// makeActionEndpoint serves a session action that takes no input.
func makeActionEndpoint(action func(ctx context.Context) (booking.State, error)) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		state, err := action(ctx)
		if err != nil {
			return nil, fmt.Errorf("session service: %w", err)
		}

		return state, nil
	}
}

func makeNavigateEndpoint(service SessionService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.NavigateRequest)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		state, err := service.Navigate(ctx, booking.Step(request.Step))
		if err != nil {
			return nil, fmt.Errorf("session service: %w", err)
		}

		return state, nil
	}
}

func makeSearchEndpoint(service SessionService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.Query)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		state, err := service.Search(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("session service: %w", err)
		}

		return state, nil
	}
}

func makeStartBookingEndpoint(service SessionService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.StartBookingRequest)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		state, err := service.StartBooking(ctx, request.FlightID)
		if err != nil {
			return nil, fmt.Errorf("session service: %w", err)
		}

		return state, nil
	}
}

func makeUpdatePassengerEndpoint(service SessionService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.UpdatePassengerRequest)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		state, err := service.UpdatePassenger(ctx, request.Index, request.Passenger)
		if err != nil {
			return nil, fmt.Errorf("session service: %w", err)
		}

		return state, nil
	}
}

func makeSubmitPaymentEndpoint(service SessionService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.PaymentData)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		state, err := service.SubmitPayment(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("session service: %w", err)
		}

		return state, nil
	}
}

func makeReceiptEndpoint(service SessionService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		r, err := service.Receipt(ctx)
		if err != nil {
			return nil, fmt.Errorf("session service: %w", err)
		}

		return r, nil
	}
}

func makeExportReceiptEndpoint(service SessionService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		path, err := service.ExportReceipt(ctx)
		if err != nil {
			return nil, fmt.Errorf("session service: %w", err)
		}

		return dto.ReceiptExportResponse{Path: path}, nil
	}
}
