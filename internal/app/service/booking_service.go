package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/booking"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/logger"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/receipt"
	"golang.org/x/sync/errgroup"
)

const fallbackPNRPrefix = "PNR"

type BookingBackend interface {
	ListFlights(ctx context.Context) ([]dto.Flight, error)
	GetPricing(ctx context.Context, flightID int) (float64, error)
	Reserve(ctx context.Context, req dto.ReservationRequest) (dto.BookingRecord, error)
}

type ReceiptExporter interface {
	Export(r receipt.Receipt) (string, error)
}

// BookingService owns the single state container of a booking session.
// Transitions are serialized by mu; backend calls run without holding it and
// their results are applied as events once they return.
type BookingService struct {
	Backend            BookingBackend
	Exporter           ReceiptExporter
	PricingConcurrency int
	Now                func() time.Time
	NewPNR             func() string

	mu    sync.Mutex
	state booking.State
}

func NewBookingService(backend BookingBackend, exporter ReceiptExporter, pricingConcurrency int) *BookingService {
	return &BookingService{
		Backend:            backend,
		Exporter:           exporter,
		PricingConcurrency: pricingConcurrency,
		Now:                time.Now,
		NewPNR:             NewFallbackPNR,
		state:              booking.NewState(),
	}
}

// NewFallbackPNR returns "PNR" followed by six lowercase alphanumerics.
func NewFallbackPNR() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")

	return fallbackPNRPrefix + token[:6]
}

// Snapshot returns a copy of the current state.
func (s *BookingService) Snapshot() booking.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// dispatch applies event to the session state and returns the new snapshot.
func (s *BookingService) dispatch(ctx context.Context, event booking.Event) (booking.State, error) {
	return s.dispatchFunc(ctx, func(booking.State) booking.Event { return event })
}

// dispatchFunc builds the event from the current state under the lock.
func (s *BookingService) dispatchFunc(ctx context.Context, build func(booking.State) booking.Event) (booking.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := build(s.state)

	next, err := s.state.Apply(event)
	if err != nil {
		slog.DebugContext(logger.WithStep(ctx, string(s.state.Step)), "event rejected",
			slog.String("event", event.Name()),
			slog.String("error", err.Error()))

		return s.state.Clone(), fmt.Errorf("apply %s: %w", event.Name(), err)
	}

	s.state = next

	return s.state.Clone(), nil
}

// LoadCatalog fetches the flight list and overlays each flight's current
// price. A failed list fetch keeps the previous catalog. A failed or zero
// price keeps the flight's base fare.
func (s *BookingService) LoadCatalog(ctx context.Context) (booking.State, error) {
	if _, err := s.dispatch(ctx, booking.CatalogLoadStarted{}); err != nil {
		return booking.State{}, err
	}

	flights, err := s.Backend.ListFlights(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load flights", slog.String("error", err.Error()))

		state, _ := s.dispatch(ctx, booking.CatalogLoadFailed{})

		return state, fmt.Errorf("load catalog: %w", err)
	}

	priced := s.priceFlights(ctx, flights)

	return s.dispatch(ctx, booking.CatalogLoaded{Flights: priced})
}

// priceFlights fetches every flight's price concurrently. Results are
// written by index so the backend order is kept.
func (s *BookingService) priceFlights(ctx context.Context, flights []dto.Flight) []dto.Flight {
	priced := make([]dto.Flight, len(flights))
	copy(priced, flights)

	group, groupCtx := errgroup.WithContext(ctx)
	if s.PricingConcurrency > 0 {
		group.SetLimit(s.PricingConcurrency)
	}

	for i := range priced {
		group.Go(func() error {
			price, err := s.Backend.GetPricing(groupCtx, priced[i].FlightID)
			if err != nil {
				slog.WarnContext(ctx, "pricing failed, keeping base fare",
					slog.Int("flight_id", priced[i].FlightID),
					slog.String("error", err.Error()))

				return nil
			}

			if price != 0 {
				priced[i].BaseFare = price
			}

			return nil
		})
	}

	// pricing errors are absorbed per flight
	_ = group.Wait()

	return priced
}

// SetQuery records the search form as typed.
func (s *BookingService) SetQuery(ctx context.Context, query dto.Query) (booking.State, error) {
	return s.dispatch(ctx, booking.QueryChanged{Query: query})
}

// Navigate is the navigation bar. From home, search is also the
// "Search Flights" button.
func (s *BookingService) Navigate(ctx context.Context, step booking.Step) (booking.State, error) {
	return s.dispatchFunc(ctx, func(state booking.State) booking.Event {
		if state.Step == booking.StepHome && step == booking.StepSearch {
			return booking.SearchOpened{}
		}

		return booking.Navigated{To: step}
	})
}

func (s *BookingService) Search(ctx context.Context, query dto.Query) (booking.State, error) {
	return s.dispatch(ctx, booking.SearchSubmitted{Query: query})
}

func (s *BookingService) StartBooking(ctx context.Context, flightID int) (booking.State, error) {
	return s.dispatch(ctx, booking.BookingStarted{FlightID: flightID})
}

func (s *BookingService) AddPassenger(ctx context.Context) (booking.State, error) {
	return s.dispatch(ctx, booking.PassengerAdded{})
}

func (s *BookingService) UpdatePassenger(ctx context.Context, index int, passenger dto.Passenger) (booking.State, error) {
	return s.dispatch(ctx, booking.PassengerUpdated{Index: index, Passenger: passenger})
}

func (s *BookingService) ContinueToPayment(ctx context.Context) (booking.State, error) {
	return s.dispatch(ctx, booking.PaymentRequested{})
}

// SetPayment records the payment form as typed, without validation.
func (s *BookingService) SetPayment(ctx context.Context, payment dto.PaymentData) (booking.State, error) {
	return s.dispatch(ctx, booking.PaymentEntered{Payment: payment})
}

// SubmitPayment checks the payment fields and reserves the selected flight
// for the current passengers. On failure the state is left as it was and
// the error is returned so the view can offer a resubmit.
func (s *BookingService) SubmitPayment(ctx context.Context, payment dto.PaymentData) (booking.State, error) {
	if err := payment.Validate(); err != nil {
		return s.Snapshot(), fmt.Errorf("submit payment: %w", err)
	}

	state, err := s.dispatch(ctx, booking.PaymentEntered{Payment: payment})
	if err != nil {
		return state, err
	}

	if state.Selected == nil {
		return state, booking.ErrNoSelectedFlight
	}

	selected := *state.Selected
	req := dto.ReservationRequest{
		FlightID:   selected.FlightID,
		Passengers: state.Passengers,
	}

	record, err := s.Backend.Reserve(ctx, req)
	if err != nil {
		slog.ErrorContext(logger.WithStep(ctx, string(state.Step)), "reservation failed",
			slog.Int("flight_id", selected.FlightID),
			slog.Int("passengers", len(req.Passengers)),
			slog.String("error", err.Error()))

		state, _ = s.dispatch(ctx, booking.ReservationFailed{})

		return state, fmt.Errorf("submit payment: %w", err)
	}

	pnr := string(record.BookingID)
	if !hasBookingID(record.BookingID) {
		pnr = s.NewPNR()
	}

	record = s.completeRecord(record, selected, pnr)

	slog.InfoContext(ctx, "reservation confirmed",
		slog.String("pnr", pnr),
		slog.Int("flight_id", selected.FlightID))

	return s.dispatch(ctx, booking.ReservationConfirmed{Record: record, PNR: pnr})
}

// completeRecord fills the history fields the backend left out.
func (s *BookingService) completeRecord(record dto.BookingRecord, selected dto.Flight, pnr string) dto.BookingRecord {
	if !hasBookingID(record.BookingID) {
		record.BookingID = dto.BookingID(pnr)
	}

	if record.FlightID == 0 {
		record.FlightID = selected.FlightID
	}

	if record.FlightNumber == "" {
		record.FlightNumber = selected.FlightNumber
	}

	if record.Route == "" {
		record.Route = selected.Route()
	}

	if record.BookingDate == "" {
		record.BookingDate = s.Now().Format(time.RFC3339)
	}

	return record
}

// hasBookingID treats an empty or zero id as missing.
func hasBookingID(id dto.BookingID) bool {
	return id != "" && id != "0"
}

func (s *BookingService) BookAnother(ctx context.Context) (booking.State, error) {
	return s.dispatch(ctx, booking.BookAnotherRequested{})
}

// Receipt builds the receipt of the last confirmed booking.
func (s *BookingService) Receipt(_ context.Context) (receipt.Receipt, error) {
	r, err := receipt.Build(s.Snapshot(), s.Now())
	if err != nil {
		return receipt.Receipt{}, fmt.Errorf("build receipt: %w", err)
	}

	return r, nil
}

// ExportReceipt writes the receipt of the last confirmed booking and
// returns its path.
func (s *BookingService) ExportReceipt(ctx context.Context) (string, error) {
	r, err := s.Receipt(ctx)
	if err != nil {
		return "", err
	}

	path, err := s.Exporter.Export(r)
	if err != nil {
		slog.ErrorContext(ctx, "failed to export receipt", slog.String("error", err.Error()))
		return "", fmt.Errorf("export receipt: %w", err)
	}

	slog.InfoContext(ctx, "receipt exported", slog.String("path", path))

	return path, nil
}
