package exception

import (
	"errors"
	"fmt"
	"net/http"
)

// ApplicationError is the error type shared by the controller, the backend
// client and the session view. StatusCode is the HTTP status the session
// view answers with.
type ApplicationError struct {
	Message    string
	StatusCode int
	Cause      error
}

// Error interface implementation.
func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	if e.Cause == nil {
		return errors.New(e.Message)
	}

	return e.Cause
}

// Is matches on message and status code so a sentinel still matches after
// a cause has been attached with WithCause.
func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	return e.Message == targetErr.Message &&
		e.StatusCode == targetErr.StatusCode
}

// WithCause returns a copy of the error carrying cause.
func (e ApplicationError) WithCause(cause error) ApplicationError {
	e.Cause = cause

	return e
}

// ErrorCode returns error code for an application error.
func (e ApplicationError) ErrorCode() int {
	if e.StatusCode == 0 {
		return http.StatusInternalServerError
	}

	return e.StatusCode
}
