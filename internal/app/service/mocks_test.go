//go:build unit

package service

import (
	"context"

	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/receipt"
	"github.com/stretchr/testify/mock"
)

type MockBookingBackend struct {
	mock.Mock
}

func NewMockBookingBackend(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookingBackend {
	m := &MockBookingBackend{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBookingBackend) ListFlights(ctx context.Context) ([]dto.Flight, error) {
	ret := m.Called(ctx)
	flights, _ := ret.Get(0).([]dto.Flight)

	return flights, ret.Error(1)
}

func (m *MockBookingBackend) GetPricing(ctx context.Context, flightID int) (float64, error) {
	ret := m.Called(ctx, flightID)

	return ret.Get(0).(float64), ret.Error(1)
}

func (m *MockBookingBackend) Reserve(ctx context.Context, req dto.ReservationRequest) (dto.BookingRecord, error) {
	ret := m.Called(ctx, req)

	return ret.Get(0).(dto.BookingRecord), ret.Error(1)
}

type MockReceiptExporter struct {
	mock.Mock
}

func NewMockReceiptExporter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReceiptExporter {
	m := &MockReceiptExporter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReceiptExporter) Export(r receipt.Receipt) (string, error) {
	ret := m.Called(r)

	return ret.String(0), ret.Error(1)
}
