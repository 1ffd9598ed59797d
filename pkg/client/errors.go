package client

import (
	"errors"
	"fmt"
)

// Configuration errors returned by New.
var (
	// ErrBaseURLRequired is returned when Config.BaseURL is empty.
	ErrBaseURLRequired = errors.New("base URL is required")

	// ErrUserAgentRequired is returned when Config.UserAgent is empty.
	ErrUserAgentRequired = errors.New("user-agent is required")

	// ErrInvalidTimeout is returned for a non-positive request timeout.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidCacheMaxAge is returned for a negative cache max-age.
	ErrInvalidCacheMaxAge = errors.New("cache max-age must not be negative")
)

// ErrBodyTooLarge is wrapped in a RequestError when a response body exceeds
// the read limit.
var ErrBodyTooLarge = errors.New("response body too large")

// RequestError wraps a transport failure with the request it belongs to.
// Non-2xx responses are not errors; they are returned to the caller as is.
type RequestError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("catalog request %s: %v", e.Endpoint, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}
