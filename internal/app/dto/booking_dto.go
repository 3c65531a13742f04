package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/exception"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists the selectable genders in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}

	return false
}

// Passenger is one traveller on the passenger form. Age is kept as typed.
type Passenger struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	Gender Gender `json:"gender" validate:"oneof=Male Female Other"`
}

// BlankPassenger is the entry seeded by "Book" and "+ Add Passenger".
func BlankPassenger() Passenger {
	return Passenger{Gender: GenderMale}
}

// PaymentData is held for the payment step only and is never persisted.
type PaymentData struct {
	CardNumber string `json:"card_number" validate:"required"`
	Expiry     string `json:"expiry" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
}

func (p *PaymentData) Bind(_ *http.Request) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

// Validate applies the payment form's required checks.
func (p *PaymentData) Validate() error {
	if err := ValidateSingleError(p); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// String keeps card data out of logs.
func (p PaymentData) String() string {
	return "PaymentData{redacted}"
}

// ReservationRequest is the body of POST /booking/reserve.
type ReservationRequest struct {
	FlightID   int         `json:"FlightID"`
	Passengers []Passenger `json:"passengers"`
}

// BookingID is the backend-assigned booking identifier. The backend emits
// it as a number; a string is accepted as well.
type BookingID string

func (id *BookingID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode booking id: %w", err)
		}

		*id = BookingID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("decode booking id: %w", err)
	}

	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("decode booking id: %w", err)
	}

	*id = BookingID(n.String())

	return nil
}

// BookingRecord is the reservation response kept in the session history.
type BookingRecord struct {
	BookingID    BookingID       `json:"BookingID,omitempty"`
	FlightID     int             `json:"FlightID,omitempty"`
	FlightNumber string          `json:"FlightNumber,omitempty"`
	Route        string          `json:"Route,omitempty"`
	BookingDate  string          `json:"BookingDate,omitempty"`
	TotalFare    float64         `json:"TotalFare,omitempty"`
	Status       string          `json:"Status,omitempty"`
	Passengers   json.RawMessage `json:"passengers,omitempty"`
}

// NavigateRequest moves the session via the navigation bar.
type NavigateRequest struct {
	Step string `json:"step" validate:"required,oneof=home search history"`
}

func (n *NavigateRequest) Bind(_ *http.Request) error {
	if err := ValidateSingleError(n); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// StartBookingRequest is the "Book" action on a search result.
type StartBookingRequest struct {
	FlightID int `json:"flight_id" validate:"required"`
}

func (s *StartBookingRequest) Bind(_ *http.Request) error {
	if err := ValidateSingleError(s); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// UpdatePassengerRequest edits the passenger at Index. Index comes from the
// URL path.
type UpdatePassengerRequest struct {
	Index int `json:"-"`
	Passenger
}

func (u *UpdatePassengerRequest) Bind(_ *http.Request) error {
	if err := ValidateSingleError(u); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// EmptyRequest is decoded for actions without a body.
type EmptyRequest struct{}

// ReceiptExportResponse reports where a receipt was written.
type ReceiptExportResponse struct {
	Path string `json:"path"`
}
