// Package gateway performs one logical fetch: it checks connectivity, makes
// at most one call, classifies any failure and wraps the outcome in a
// result.Result. Nothing escapes a Gateway as a panic or a bare error.
package gateway

import (
	"context"
	"net/http"

	"github.com/Sternrassler/catalog-client/pkg/connectivity"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RawResponse is what a Fetcher hands back for a completed call.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccessful reports whether the status is 2xx.
func (r *RawResponse) IsSuccessful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Op performs one network call.
type Op func(ctx context.Context) (*RawResponse, error)

// Gateway is stateless apart from its collaborators and is safe for
// concurrent use by any number of controllers.
type Gateway struct {
	connectivity connectivity.Checker
	logger       zerolog.Logger
}

// New creates a Gateway gated by the given connectivity checker.
func New(checker connectivity.Checker, logger zerolog.Logger) *Gateway {
	if checker == nil {
		panic("connectivity checker cannot be nil")
	}
	return &Gateway{
		connectivity: checker,
		logger:       logger,
	}
}

// NewDefault creates a Gateway that logs through the global logger.
func NewDefault(checker connectivity.Checker) *Gateway {
	return New(checker, log.With().Str("component", "gateway").Logger())
}
