package flight

import (
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
)

// FilterFlights returns the flights whose source and destination IATA codes
// equal the normalized query fields. An empty field matches every flight.
// Order is preserved and the input slice is not modified.
func FilterFlights(flights []dto.Flight, query dto.Query) []dto.Flight {
	query = query.Normalize()

	results := make([]dto.Flight, 0, len(flights))

	for _, flight := range flights {
		if query.From != "" && flight.SourceAirport.IATACode != query.From {
			continue
		}

		if query.To != "" && flight.DestinationAirport.IATACode != query.To {
			continue
		}

		results = append(results, flight)
	}

	return results
}

// FindFlight returns the flight with the given id.
func FindFlight(flights []dto.Flight, flightID int) (dto.Flight, bool) {
	for _, flight := range flights {
		if flight.FlightID == flightID {
			return flight, true
		}
	}

	return dto.Flight{}, false
}
