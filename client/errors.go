package client

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoIdentity is returned when a write is attempted before an anonymous
// identity has been established.
var ErrNoIdentity = errors.New("no identity established")

// ErrBusy is returned when an operation is already in flight.
var ErrBusy = errors.New("operation already in progress")

// CooldownError reports a write rejected by a local cooldown.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active, %ds remaining", int(e.Remaining.Seconds()))
}

// ValidationError reports input rejected before any network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %d: %s", e.StatusCode, e.Code, e.Message)
}

// IsUnauthorized checks if error is due to missing/invalid authentication.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// IsNotFound checks if error is due to resource not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
