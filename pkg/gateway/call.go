package gateway

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Sternrassler/catalog-client/pkg/result"
)

// Decoder turns a present 2xx body into a value.
type Decoder[T any] func(body []byte) (T, error)

// Call is one call site's configuration: how to decode the body and whether
// an absent body is acceptable. Build it once and reuse it.
type Call[T any] struct {
	name         string
	decode       Decoder[T]
	tolerateNone bool
	fallback     T
}

// CallOption configures a Call.
type CallOption[T any] func(*Call[T])

// WithEmptyBody makes the call substitute def for an absent 2xx body instead
// of failing.
func WithEmptyBody[T any](def T) CallOption[T] {
	return func(c *Call[T]) {
		c.tolerateNone = true
		c.fallback = def
	}
}

// NewCall builds a call site named name (used for metrics and logs).
func NewCall[T any](name string, decode Decoder[T], opts ...CallOption[T]) *Call[T] {
	if decode == nil {
		panic("decoder cannot be nil")
	}
	c := &Call[T]{name: name, decode: decode}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the call site name.
func (c *Call[T]) Name() string {
	return c.name
}

// Perform runs op through the gateway. It makes exactly one connectivity
// check and at most one call, and never retries.
func (c *Call[T]) Perform(ctx context.Context, g *Gateway, op Op) (res result.Result[T]) {
	start := time.Now()
	defer func() {
		fetchDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
		c.record(g, res)
	}()

	if !g.connectivity.IsOnline() {
		offlineTotal.Inc()
		return result.Failure[T](result.Classify(result.Outcome{Offline: true}), nil)
	}

	resp, err := invoke(ctx, op)
	if err != nil {
		kind := result.Classify(result.Outcome{Err: err})
		return result.Failure[T](kind, &result.Error{Kind: kind, Err: err})
	}
	if resp == nil {
		return result.Failure[T](result.KindUnknown, &result.Error{
			Kind: result.KindUnknown,
			Err:  fmt.Errorf("%s: fetcher returned no response", c.name),
		})
	}

	if !resp.IsSuccessful() {
		kind := result.Classify(result.Outcome{StatusCode: resp.StatusCode})
		return result.Failure[T](kind, &result.Error{Kind: kind, StatusCode: resp.StatusCode})
	}

	if isAbsent(resp.Body) {
		if c.tolerateNone {
			return result.Success(c.fallback)
		}
		return result.Failure[T](result.KindUnknown, &result.Error{
			Kind:       result.KindUnknown,
			StatusCode: resp.StatusCode,
			Err:        result.ErrAbsentBody,
		})
	}

	value, err := c.decode(resp.Body)
	if err != nil {
		kind := result.Classify(result.Outcome{StatusCode: resp.StatusCode, DecodeErr: err})
		return result.Failure[T](kind, &result.Error{
			Kind:       kind,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode %s: %w", c.name, err),
		})
	}

	return result.Success(value)
}

// invoke calls op, turning a panic into an error.
func invoke(ctx context.Context, op Op) (resp *RawResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("fetcher panicked: %v", r)
		}
	}()
	return op(ctx)
}

func isAbsent(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func (c *Call[T]) record(g *Gateway, res result.Result[T]) {
	if res.IsSuccess() {
		fetchesTotal.WithLabelValues(c.name, "success").Inc()
		g.logger.Debug().Str("call", c.name).Msg("Fetch succeeded")
		return
	}

	kind := res.Kind()
	fetchesTotal.WithLabelValues(c.name, "failure").Inc()
	fetchErrorsTotal.WithLabelValues(string(kind)).Inc()

	event := g.logger.Warn()
	if kind == result.KindNoConnectivity {
		event = g.logger.Info()
	}
	event.
		Str("call", c.name).
		Str("error_kind", string(kind)).
		AnErr("cause", res.Cause()).
		Msg("Fetch failed")
}
