package backend

import (
	"net/http"

	"github.com/ijalalfrz/skyswap-booking-client/internal/pkg/exception"
)

var ErrBackendUnavailable = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "booking backend unavailable",
}

var ErrUnexpectedStatus = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "booking backend returned an error status",
}

var ErrInvalidResponse = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "invalid booking backend response",
}

var ErrRetryExceeded = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "retry exceeded",
}

var ErrBackendRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "booking backend rate limit exceeded",
}
