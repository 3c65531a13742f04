// Package booking holds the booking flow's state and its step machine.
//
// State is a plain value and every transition is a pure function from
// (State, Event) to a new State: Apply never writes through the receiver's
// slices, so a State handed to a view stays valid after later transitions.
package booking

import (
	"slices"

	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
)

type Step string

const (
	StepHome    Step = "home"
	StepSearch  Step = "search"
	StepBook    Step = "book"
	StepPayment Step = "payment"
	StepDone    Step = "done"
	StepHistory Step = "history"
)

// State is the single state container of a booking session.
type State struct {
	Step       Step                `json:"step"`
	Loading    bool                `json:"loading"`
	Query      dto.Query           `json:"query"`
	Flights    []dto.Flight        `json:"-"`
	Results    []dto.Flight        `json:"results"`
	Selected   *dto.Flight         `json:"selected,omitempty"`
	Passengers []dto.Passenger     `json:"passengers"`
	Payment    dto.PaymentData     `json:"-"`
	History    []dto.BookingRecord `json:"history"`
	LastPNR    string              `json:"last_pnr,omitempty"`
}

// NewState returns the state of a fresh session: home screen, empty catalog.
func NewState() State {
	return State{
		Step:       StepHome,
		Results:    []dto.Flight{},
		Passengers: []dto.Passenger{},
		History:    []dto.BookingRecord{},
	}
}

// Apply runs event against s. On error s is returned unchanged.
func (s State) Apply(event Event) (State, error) {
	next, err := event.apply(s)
	if err != nil {
		return s, err
	}

	return next, nil
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	clone := s
	clone.Flights = slices.Clone(s.Flights)
	clone.Results = slices.Clone(s.Results)
	clone.Passengers = slices.Clone(s.Passengers)
	clone.History = slices.Clone(s.History)

	if s.Selected != nil {
		selected := *s.Selected
		clone.Selected = &selected
	}

	return clone
}

// CheckInvariants reports a violation of the flow invariants: a selected
// flight and at least one passenger on the book, payment and done steps.
func (s State) CheckInvariants() error {
	switch s.Step {
	case StepBook, StepPayment, StepDone:
		if s.Selected == nil {
			return ErrNoSelectedFlight
		}

		if len(s.Passengers) == 0 {
			return ErrNoPassengers
		}
	}

	return nil
}
