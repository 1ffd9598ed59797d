package result

import (
	"errors"
	"fmt"
)

// ErrAbsentBody is the cause attached to a failure when a 2xx response
// carried no body and the call site does not tolerate that.
var ErrAbsentBody = errors.New("response body is absent")

// Error is the error form of a failed Result.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("catalog %s error (status %d): %v", e.Kind, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("catalog %s error (status %d)", e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("catalog %s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("catalog %s error", e.Kind)
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind carried by err, or KindUnknown if err does not
// wrap an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
