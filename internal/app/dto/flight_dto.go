package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Flight is a flight as served by GET /flights/. Field names follow the
// backend's JSON.
type Flight struct {
	FlightID           int     `json:"FlightID"`
	FlightNumber       string  `json:"FlightNumber"`
	BaseFare           float64 `json:"BaseFare"`
	SourceAirport      Airport `json:"source_airport"`
	DestinationAirport Airport `json:"destination_airport"`
	Airline            Airline `json:"airline"`
	DepartureTime      string  `json:"DepartureTime,omitempty"`
	ArrivalTime        string  `json:"ArrivalTime,omitempty"`
	AvailableSeats     int     `json:"AvailableSeats,omitempty"`
	FlightStatus       string  `json:"FlightStatus,omitempty"`
}

type Airport struct {
	AirportName string `json:"AirportName,omitempty"`
	City        string `json:"City,omitempty"`
	Country     string `json:"Country,omitempty"`
	IATACode    string `json:"IATA_Code"`
}

type Airline struct {
	AirlineID   int    `json:"AirlineID,omitempty"`
	AirlineName string `json:"AirlineName"`
}

// Route renders the flight's airport pair, e.g. "DEL → BOM".
func (f Flight) Route() string {
	return fmt.Sprintf("%s → %s", f.SourceAirport.IATACode, f.DestinationAirport.IATACode)
}

// backend timestamps are naive ISO-8601 with optional fractional seconds
var flightTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// DurationMinutes returns the scheduled flight time. ok is false when either
// timestamp is missing or unparsable.
func (f Flight) DurationMinutes() (minutes int64, ok bool) {
	departure, ok := parseFlightTime(f.DepartureTime)
	if !ok {
		return 0, false
	}

	arrival, ok := parseFlightTime(f.ArrivalTime)
	if !ok || arrival.Before(departure) {
		return 0, false
	}

	return int64(arrival.Sub(departure).Minutes()), true
}

func parseFlightTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range flightTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Query is the search form: origin and destination IATA codes as typed.
type Query struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Normalize trims and upper-cases both fields.
func (q Query) Normalize() Query {
	return Query{
		From: strings.ToUpper(strings.TrimSpace(q.From)),
		To:   strings.ToUpper(strings.TrimSpace(q.To)),
	}
}

// Bind implements render.Binder. Both fields are optional.
func (q *Query) Bind(_ *http.Request) error {
	return nil
}

// PricingResponse is the body of GET /pricing/{FlightID}. The backend
// answers either {"price": n} or a bare number.
type PricingResponse struct {
	Price float64 `json:"price"`
}

func (p *PricingResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		var price float64
		if err := json.Unmarshal(trimmed, &price); err != nil {
			return fmt.Errorf("decode bare price: %w", err)
		}

		p.Price = price

		return nil
	}

	type plain PricingResponse

	var decoded plain
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return fmt.Errorf("decode price object: %w", err)
	}

	*p = PricingResponse(decoded)

	return nil
}
