package booking

import (
	"fmt"
	"slices"

	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/flight"
)

// Event is a user action or a network result applied to a State.
type Event interface {
	// Name identifies the event in logs and errors.
	Name() string
	apply(s State) (State, error)
}

func requireStep(s State, event Event, steps ...Step) error {
	if slices.Contains(steps, s.Step) {
		return nil
	}

	return ErrInvalidTransition.WithCause(fmt.Errorf("%s on step %s", event.Name(), s.Step))
}

// SearchOpened is the "Search Flights" button on the home screen.
type SearchOpened struct{}

func (SearchOpened) Name() string { return "search_opened" }

func (e SearchOpened) apply(s State) (State, error) {
	if err := requireStep(s, e, StepHome); err != nil {
		return s, err
	}

	s.Step = StepSearch

	return s, nil
}

// Navigated is a navigation bar click. Only home, search and history are
// reachable this way.
type Navigated struct {
	To Step
}

func (Navigated) Name() string { return "navigated" }

func (e Navigated) apply(s State) (State, error) {
	switch e.To {
	case StepHome, StepSearch, StepHistory:
	default:
		return s, ErrInvalidStep.WithCause(fmt.Errorf("step %q", e.To))
	}

	s.Step = e.To

	return s, nil
}

// QueryChanged records the search form as typed, without searching.
type QueryChanged struct {
	Query dto.Query
}

func (QueryChanged) Name() string { return "query_changed" }

func (e QueryChanged) apply(s State) (State, error) {
	s.Query = e.Query

	return s, nil
}

// SearchSubmitted filters the catalog with Query.
type SearchSubmitted struct {
	Query dto.Query
}

func (SearchSubmitted) Name() string { return "search_submitted" }

func (e SearchSubmitted) apply(s State) (State, error) {
	if err := requireStep(s, e, StepSearch); err != nil {
		return s, err
	}

	s.Query = e.Query
	s.Results = flight.FilterFlights(s.Flights, e.Query)
	s.Step = StepSearch

	return s, nil
}

type CatalogLoadStarted struct{}

func (CatalogLoadStarted) Name() string { return "catalog_load_started" }

func (CatalogLoadStarted) apply(s State) (State, error) {
	s.Loading = true

	return s, nil
}

// CatalogLoaded replaces the catalog and resets the results to the whole
// catalog.
type CatalogLoaded struct {
	Flights []dto.Flight
}

func (CatalogLoaded) Name() string { return "catalog_loaded" }

func (e CatalogLoaded) apply(s State) (State, error) {
	flights := slices.Clone(e.Flights)
	if flights == nil {
		flights = []dto.Flight{}
	}

	s.Flights = flights
	s.Results = slices.Clone(flights)
	s.Loading = false

	return s, nil
}

// CatalogLoadFailed keeps the previous catalog.
type CatalogLoadFailed struct{}

func (CatalogLoadFailed) Name() string { return "catalog_load_failed" }

func (CatalogLoadFailed) apply(s State) (State, error) {
	s.Loading = false

	return s, nil
}

// BookingStarted is "Book" on a search result. It selects the flight and
// resets the passengers to a single blank entry.
type BookingStarted struct {
	FlightID int
}

func (BookingStarted) Name() string { return "booking_started" }

func (e BookingStarted) apply(s State) (State, error) {
	if err := requireStep(s, e, StepSearch); err != nil {
		return s, err
	}

	selected, ok := flight.FindFlight(s.Results, e.FlightID)
	if !ok {
		return s, ErrFlightNotFound.WithCause(fmt.Errorf("flight id %d", e.FlightID))
	}

	s.Selected = &selected
	s.Passengers = []dto.Passenger{dto.BlankPassenger()}
	s.Step = StepBook

	return s, nil
}

// PassengerAdded is "+ Add Passenger".
type PassengerAdded struct{}

func (PassengerAdded) Name() string { return "passenger_added" }

func (e PassengerAdded) apply(s State) (State, error) {
	if err := requireStep(s, e, StepBook); err != nil {
		return s, err
	}

	passengers := make([]dto.Passenger, 0, len(s.Passengers)+1)
	passengers = append(passengers, s.Passengers...)
	s.Passengers = append(passengers, dto.BlankPassenger())

	return s, nil
}

// PassengerUpdated replaces the passenger at Index.
type PassengerUpdated struct {
	Index     int
	Passenger dto.Passenger
}

func (PassengerUpdated) Name() string { return "passenger_updated" }

func (e PassengerUpdated) apply(s State) (State, error) {
	if err := requireStep(s, e, StepBook); err != nil {
		return s, err
	}

	if e.Index < 0 || e.Index >= len(s.Passengers) {
		return s, ErrPassengerNotFound.WithCause(fmt.Errorf("index %d of %d", e.Index, len(s.Passengers)))
	}

	if !e.Passenger.Gender.Valid() {
		return s, ErrInvalidGender.WithCause(fmt.Errorf("gender %q", e.Passenger.Gender))
	}

	passengers := slices.Clone(s.Passengers)
	passengers[e.Index] = e.Passenger
	s.Passengers = passengers

	return s, nil
}

// PaymentRequested is "Continue to Payment".
type PaymentRequested struct{}

func (PaymentRequested) Name() string { return "payment_requested" }

func (e PaymentRequested) apply(s State) (State, error) {
	if err := requireStep(s, e, StepBook); err != nil {
		return s, err
	}

	s.Step = StepPayment

	return s, nil
}

// PaymentEntered records the payment form as typed.
type PaymentEntered struct {
	Payment dto.PaymentData
}

func (PaymentEntered) Name() string { return "payment_entered" }

func (e PaymentEntered) apply(s State) (State, error) {
	if err := requireStep(s, e, StepPayment); err != nil {
		return s, err
	}

	s.Payment = e.Payment

	return s, nil
}

// ReservationConfirmed applies a successful reservation: the record is
// prepended to the history and the flow moves to done. It is accepted on
// any step as long as a flight and passengers are present, so a reservation
// that completes after the user navigated away is still recorded.
type ReservationConfirmed struct {
	Record dto.BookingRecord
	PNR    string
}

func (ReservationConfirmed) Name() string { return "reservation_confirmed" }

func (e ReservationConfirmed) apply(s State) (State, error) {
	if s.Selected == nil {
		return s, ErrNoSelectedFlight
	}

	if len(s.Passengers) == 0 {
		return s, ErrNoPassengers
	}

	history := make([]dto.BookingRecord, 0, len(s.History)+1)
	history = append(history, e.Record)
	s.History = append(history, s.History...)
	s.LastPNR = e.PNR
	s.Payment = dto.PaymentData{}
	s.Step = StepDone

	return s, nil
}

// ReservationFailed leaves the state untouched so the user can resubmit.
type ReservationFailed struct{}

func (ReservationFailed) Name() string { return "reservation_failed" }

func (ReservationFailed) apply(s State) (State, error) {
	return s, nil
}

// BookAnotherRequested is "Book Another" on the confirmation screen.
type BookAnotherRequested struct{}

func (BookAnotherRequested) Name() string { return "book_another_requested" }

func (e BookAnotherRequested) apply(s State) (State, error) {
	if err := requireStep(s, e, StepDone); err != nil {
		return s, err
	}

	s.Step = StepSearch

	return s, nil
}
