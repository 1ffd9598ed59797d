// Package detail owns the view state of a single catalog item.
//
// A Controller is bound to one immutable item id. It fetches the item once on
// construction and again on every Retry; a retry supersedes the previous
// attempt, whose late result is dropped.
package detail

import (
	"context"
	"sync"

	"github.com/Sternrassler/catalog-client/pkg/catalog"
	"github.com/Sternrassler/catalog-client/pkg/metrics"
	"github.com/Sternrassler/catalog-client/pkg/model"
	"github.com/Sternrassler/catalog-client/pkg/result"
	"github.com/Sternrassler/catalog-client/pkg/state"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var staleResults = metrics.StaleResultsTotal.WithLabelValues("detail")

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller owns the detail State for one item.
type Controller struct {
	source catalog.ItemSource
	id     int
	logger zerolog.Logger
	state  *state.Cell[State]
	parent context.Context

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	lastKind   result.ErrorKind
	closed     bool
}

// New creates a detail controller for id and starts fetching it.
func New(ctx context.Context, source catalog.ItemSource, id int, opts ...Option) *Controller {
	if source == nil {
		panic("item source cannot be nil")
	}

	c := &Controller{
		source: source,
		id:     id,
		logger: log.With().Str("component", "detail").Logger(),
		state:  state.NewCell(State{Status: Loading}),
		parent: ctx,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Int("item_id", id).Logger()

	c.mu.Lock()
	c.startLocked()
	c.mu.Unlock()

	return c
}

// ID returns the item id the controller is bound to.
func (c *Controller) ID() int {
	return c.id
}

// State returns the current detail state.
func (c *Controller) State() State {
	return c.state.Get()
}

// Subscribe returns an ordered stream of detail states, starting with the
// current one.
func (c *Controller) Subscribe() *state.Subscription[State] {
	return c.state.Subscribe()
}

// Retry publishes Loading and fetches the item again.
func (c *Controller) Retry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state.Set(State{Status: Loading})
	c.startLocked()
}

// LastErrorKind returns the kind of the most recent failure, or "" if the
// last completed fetch succeeded.
func (c *Controller) LastErrorKind() result.ErrorKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastKind
}

// Close cancels any outstanding fetch and ends all subscriptions.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	c.state.Close()
}

func (c *Controller) startLocked() {
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	gen := c.generation

	ctx, cancel := context.WithCancel(c.parent)
	c.cancel = cancel

	c.logger.Debug().Uint64("generation", gen).Msg("Fetching item")

	go func() {
		defer cancel()
		res := c.source.Item(ctx, c.id)
		c.complete(gen, res)
	}()
}

func (c *Controller) complete(gen uint64, res result.Result[model.ItemDetail]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation {
		staleResults.Inc()
		c.logger.Debug().Uint64("generation", gen).Msg("Dropping superseded item result")
		return
	}
	c.cancel = nil

	item, ok := res.Value()
	if !ok {
		c.lastKind = res.Kind()
		c.logger.Warn().
			Err(res.Cause()).
			Str("error_kind", string(res.Kind())).
			Msg("Item fetch failed")
		if res.Kind() == result.KindNoConnectivity {
			c.state.Set(State{Status: NoConnectivityError})
		} else {
			c.state.Set(State{Status: NetworkError})
		}
		return
	}

	c.lastKind = ""
	c.state.Set(State{Status: Loaded, Item: item})
}
