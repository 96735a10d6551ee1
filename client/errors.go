package client

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for generation service responses.
var (
	// ErrBadRequest indicates the service rejected the request body.
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound indicates the generation endpoint does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited indicates the service rate limit was exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServerError indicates the service failed while generating.
	ErrServerError = errors.New("server error")
)

// APIError represents a non-success response from the generation
// service. Its message carries the numeric status verbatim so the
// failure can be surfaced to the user unchanged.
type APIError struct {
	// Service is the name used for the generation service.
	Service string

	// StatusCode is the HTTP status code returned.
	StatusCode int

	// Message is the error message from the service, or the standard
	// status text when the body carried none.
	Message string

	// Endpoint is the path that was called.
	Endpoint string

	// RequestID is the request ID for debugging (if available).
	RequestID string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s API error (%d) at %s [%s]: %s",
			e.Service, e.StatusCode, e.Endpoint, e.RequestID, e.Message)
	}
	return fmt.Sprintf("%s API error (%d) at %s: %s",
		e.Service, e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap returns the underlying sentinel error based on status code.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 400:
		return ErrBadRequest
	case 404:
		return ErrNotFound
	case 429:
		return ErrRateLimited
	default:
		if e.StatusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// IsNotFound reports whether the error indicates the endpoint was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited reports whether the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsServerError reports whether the error indicates a service-side failure.
func IsServerError(err error) bool {
	return errors.Is(err, ErrServerError)
}
