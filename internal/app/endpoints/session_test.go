package endpoints

import (
	"context"
	"testing"

	"github.com/go-kit/kit/endpoint"
	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/booking"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/receipt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Snapshot() booking.State {
	return m.Called().Get(0).(booking.State)
}

func (m *MockSessionService) LoadCatalog(ctx context.Context) (booking.State, error) {
	return m.callMethod("LoadCatalog", ctx)
}

func (m *MockSessionService) Navigate(ctx context.Context, step booking.Step) (booking.State, error) {
	return m.callMethod("Navigate", ctx, step)
}

func (m *MockSessionService) Search(ctx context.Context, query dto.Query) (booking.State, error) {
	return m.callMethod("Search", ctx, query)
}

func (m *MockSessionService) StartBooking(ctx context.Context, flightID int) (booking.State, error) {
	return m.callMethod("StartBooking", ctx, flightID)
}

func (m *MockSessionService) AddPassenger(ctx context.Context) (booking.State, error) {
	return m.callMethod("AddPassenger", ctx)
}

func (m *MockSessionService) UpdatePassenger(ctx context.Context, index int, passenger dto.Passenger) (booking.State, error) {
	return m.callMethod("UpdatePassenger", ctx, index, passenger)
}

func (m *MockSessionService) ContinueToPayment(ctx context.Context) (booking.State, error) {
	return m.callMethod("ContinueToPayment", ctx)
}

func (m *MockSessionService) SubmitPayment(ctx context.Context, payment dto.PaymentData) (booking.State, error) {
	return m.callMethod("SubmitPayment", ctx, payment)
}

func (m *MockSessionService) BookAnother(ctx context.Context) (booking.State, error) {
	return m.callMethod("BookAnother", ctx)
}

func (m *MockSessionService) Receipt(ctx context.Context) (receipt.Receipt, error) {
	ret := m.Called(ctx)
	r, _ := ret.Get(0).(receipt.Receipt)

	return r, ret.Error(1)
}

func (m *MockSessionService) ExportReceipt(ctx context.Context) (string, error) {
	ret := m.Called(ctx)

	return ret.String(0), ret.Error(1)
}

// callMethod records the call under method's name.
func (m *MockSessionService) callMethod(method string, args ...interface{}) (booking.State, error) {
	ret := m.MethodCalled(method, args...)
	state, _ := ret.Get(0).(booking.State)

	return state, ret.Error(1)
}

func TestSessionEndpoint(t *testing.T) {
	searchState := booking.State{Step: booking.StepSearch}

	endpointRequest := func(
		pick func(e SessionEndpoint) endpoint.Endpoint,
		req interface{},
		setupMock func(m *MockSessionService),
		want interface{},
		wantErr error,
	) func(t *testing.T) {
		return func(t *testing.T) {
			m := &MockSessionService{}
			setupMock(m)
			defer m.AssertExpectations(t)

			got, err := pick(MakeSessionEndpoint(m))(context.Background(), req)
			if wantErr != nil {
				assert.ErrorIs(t, err, wantErr)
				return
			}

			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("endpoint response mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("navigate", endpointRequest(
		func(e SessionEndpoint) endpoint.Endpoint { return e.Navigate },
		&dto.NavigateRequest{Step: "search"},
		func(m *MockSessionService) {
			m.On("Navigate", mock.Anything, booking.StepSearch).Return(searchState, nil)
		},
		searchState, nil,
	))

	t.Run("navigate_invalid_type", endpointRequest(
		func(e SessionEndpoint) endpoint.Endpoint { return e.Navigate },
		dto.NavigateRequest{Step: "search"},
		func(*MockSessionService) {},
		nil, errInvalidType,
	))

	t.Run("search", endpointRequest(
		func(e SessionEndpoint) endpoint.Endpoint { return e.Search },
		&dto.Query{From: "DEL"},
		func(m *MockSessionService) {
			m.On("Search", mock.Anything, dto.Query{From: "DEL"}).Return(searchState, nil)
		},
		searchState, nil,
	))

	t.Run("update_passenger", endpointRequest(
		func(e SessionEndpoint) endpoint.Endpoint { return e.UpdatePassenger },
		&dto.UpdatePassengerRequest{Index: 1, Passenger: dto.Passenger{Name: "Ravi", Gender: dto.GenderMale}},
		func(m *MockSessionService) {
			m.On("UpdatePassenger", mock.Anything, 1, dto.Passenger{Name: "Ravi", Gender: dto.GenderMale}).
				Return(booking.State{Step: booking.StepBook}, nil)
		},
		booking.State{Step: booking.StepBook}, nil,
	))

	t.Run("submit_payment_failure", endpointRequest(
		func(e SessionEndpoint) endpoint.Endpoint { return e.SubmitPayment },
		&dto.PaymentData{CardNumber: "4111", Expiry: "12/29", CVV: "123"},
		func(m *MockSessionService) {
			m.On("SubmitPayment", mock.Anything, mock.Anything).
				Return(booking.State{}, booking.ErrNoSelectedFlight)
		},
		nil, booking.ErrNoSelectedFlight,
	))

	t.Run("add_passenger", endpointRequest(
		func(e SessionEndpoint) endpoint.Endpoint { return e.AddPassenger },
		nil,
		func(m *MockSessionService) {
			m.On("AddPassenger", mock.Anything).Return(booking.State{Step: booking.StepBook}, nil)
		},
		booking.State{Step: booking.StepBook}, nil,
	))

	t.Run("export_receipt", endpointRequest(
		func(e SessionEndpoint) endpoint.Endpoint { return e.ExportReceipt },
		nil,
		func(m *MockSessionService) {
			m.On("ExportReceipt", mock.Anything).Return("./12_receipt.json", nil)
		},
		dto.ReceiptExportResponse{Path: "./12_receipt.json"}, nil,
	))
}
