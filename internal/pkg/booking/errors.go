package booking

import (
	"net/http"

	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/exception"
)

var ErrInvalidTransition = exception.ApplicationError{
	Message:    "action not allowed on the current step",
	StatusCode: http.StatusConflict,
}

var ErrInvalidStep = exception.ApplicationError{
	Message:    "step is not reachable from the navigation bar",
	StatusCode: http.StatusBadRequest,
}

var ErrFlightNotFound = exception.ApplicationError{
	Message:    "flight not found in search results",
	StatusCode: http.StatusNotFound,
}

var ErrPassengerNotFound = exception.ApplicationError{
	Message:    "passenger not found",
	StatusCode: http.StatusNotFound,
}

var ErrInvalidGender = exception.ApplicationError{
	Message:    "gender must be one of Male, Female, Other",
	StatusCode: http.StatusBadRequest,
}

var ErrNoSelectedFlight = exception.ApplicationError{
	Message:    "no flight selected",
	StatusCode: http.StatusConflict,
}

var ErrNoPassengers = exception.ApplicationError{
	Message:    "booking has no passengers",
	StatusCode: http.StatusConflict,
}

var ErrNoConfirmedBooking = exception.ApplicationError{
	Message:    "no confirmed booking",
	StatusCode: http.StatusConflict,
}
