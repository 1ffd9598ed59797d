package result

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"syscall"
)

// Outcome is everything known about one fetch attempt at classification time.
type Outcome struct {
	// Offline is set when the connectivity check failed before any call.
	Offline bool

	// Err is the transport error returned by the call, if any.
	Err error

	// StatusCode is the HTTP status of a completed call.
	StatusCode int

	// DecodeErr is set when a 2xx body could not be turned into the
	// expected shape.
	DecodeErr error
}

// Classify maps an outcome onto exactly one ErrorKind. Rules are applied in
// priority order: connectivity, transport error, 404, 5xx, everything else.
// Classify is only meaningful for failed outcomes; a clean 2xx outcome falls
// into the last rule.
func Classify(o Outcome) ErrorKind {
	switch {
	case o.Offline:
		return KindNoConnectivity
	case o.Err != nil:
		if IsNetworkError(o.Err) {
			return KindNetwork
		}
		return KindUnknown
	case o.StatusCode == 404:
		return KindNotFound
	case o.StatusCode >= 500 && o.StatusCode < 600:
		return KindServer
	default:
		return KindUnknown
	}
}

// IsNetworkError reports whether err is an I/O level failure: the host could
// not be reached, the call timed out, or the connection broke mid-flight.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	// *url.Error satisfies net.Error for every cause, so look underneath it.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.EHOSTUNREACH),
		errors.Is(err, syscall.ENETUNREACH):
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
