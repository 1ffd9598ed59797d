package pagination

import (
	"context"
	"sync"

	"github.com/Sternrassler/catalog-client/pkg/catalog"
	"github.com/Sternrassler/catalog-client/pkg/model"
	"github.com/Sternrassler/catalog-client/pkg/result"
	"github.com/Sternrassler/catalog-client/pkg/state"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultPageSize is the number of items requested per page.
const DefaultPageSize = 20

// Config holds list controller configuration.
type Config struct {
	// PageSize is the limit sent with every page request.
	PageSize int
}

// DefaultConfig returns the default list configuration.
func DefaultConfig() Config {
	return Config{PageSize: DefaultPageSize}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller owns the pagination cursor and the published ListState.
type Controller struct {
	source   catalog.PageSource
	pageSize int
	logger   zerolog.Logger
	state    *state.Cell[ListState]

	parent context.Context

	mu         sync.Mutex
	offset     int
	endReached bool
	inFlight   bool
	generation uint64
	cancel     context.CancelFunc
	lastKind   result.ErrorKind
	closed     bool
}

// New creates a list controller and starts fetching the first page.
// ctx bounds every fetch the controller issues.
func New(ctx context.Context, source catalog.PageSource, cfg Config, opts ...Option) *Controller {
	if source == nil {
		panic("page source cannot be nil")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}

	c := &Controller{
		source:   source,
		pageSize: cfg.PageSize,
		logger:   log.With().Str("component", "pagination").Logger(),
		state:    state.NewCell(Loading()),
		parent:   ctx,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.mu.Lock()
	c.startLocked()
	c.mu.Unlock()

	return c
}

// State returns the current list state.
func (c *Controller) State() ListState {
	return c.state.Get()
}

// Subscribe returns an ordered stream of list states, starting with the
// current one.
func (c *Controller) Subscribe() *state.Subscription[ListState] {
	return c.state.Subscribe()
}

// Retry discards the cursor, publishes Loading and fetches the first page
// again. A fetch still in flight is superseded and its result dropped.
func (c *Controller) Retry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.logger.Debug().Uint64("generation", c.generation).Msg("Retry requested")

	c.offset = 0
	c.endReached = false
	c.state.Set(Loading())
	c.startLocked()
}

// RequestNextPage fetches the page at the current offset. It is ignored
// while a fetch is in flight or once the end of data was reached.
func (c *Controller) RequestNextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.inFlight || c.endReached {
		return
	}

	c.state.Update(func(prev ListState) ListState {
		if prev.IsLoaded() {
			return Loaded(prev.Items, true)
		}
		return prev
	})
	c.startLocked()
}

// Offset returns the offset the next page will be requested at.
func (c *Controller) Offset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// EndReached reports whether an empty page was received.
func (c *Controller) EndReached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endReached
}

// InFlight reports whether a fetch is outstanding.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// LastErrorKind returns the kind of the most recent failure, or "" if the
// last completed fetch succeeded.
func (c *Controller) LastErrorKind() result.ErrorKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastKind
}

// Close cancels any outstanding fetch and ends all subscriptions. Later
// commands and late completions are ignored.
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
	c.inFlight = false
	c.mu.Unlock()

	c.state.Close()
}

// startLocked supersedes the current fetch and issues one at c.offset.
func (c *Controller) startLocked() {
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	gen := c.generation
	offset := c.offset

	ctx, cancel := context.WithCancel(c.parent)
	c.cancel = cancel
	c.inFlight = true

	c.logger.Debug().
		Int("offset", offset).
		Int("limit", c.pageSize).
		Uint64("generation", gen).
		Msg("Fetching page")

	go func() {
		defer cancel()
		res := c.source.Page(ctx, c.pageSize, offset)
		c.complete(gen, offset, res)
	}()
}

func (c *Controller) complete(gen uint64, offset int, res result.Result[model.Page]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation {
		staleResults.Inc()
		c.logger.Debug().
			Int("offset", offset).
			Uint64("generation", gen).
			Msg("Dropping superseded page result")
		return
	}

	c.inFlight = false
	c.cancel = nil

	page, ok := res.Value()
	if !ok {
		c.lastKind = res.Kind()
		c.logger.Warn().
			Err(res.Cause()).
			Str("error_kind", string(res.Kind())).
			Int("offset", offset).
			Msg("Page fetch failed")
		c.state.Set(failureState(res.Kind()))
		return
	}
	c.lastKind = ""

	if page.IsEmpty() {
		c.endReached = true
		c.logger.Debug().Int("offset", offset).Msg("End of list reached")
		if offset == 0 {
			c.state.Set(Empty())
			return
		}
		c.state.Update(func(prev ListState) ListState {
			if prev.IsLoaded() {
				return Loaded(prev.Items, false)
			}
			return prev
		})
		return
	}

	c.offset = offset + c.pageSize
	pagesLoadedTotal.Inc()
	c.state.Update(func(prev ListState) ListState {
		var existing []model.ItemSummary
		if prev.IsLoaded() {
			existing = prev.Items
		}
		items := make([]model.ItemSummary, 0, len(existing)+page.Len())
		items = append(items, existing...)
		items = append(items, page.Items...)
		return Loaded(items, false)
	})

	c.logger.Debug().
		Int("offset", offset).
		Int("received", page.Len()).
		Int("next_offset", c.offset).
		Msg("Page appended")
}

// failureState maps an error kind to the list state shown for it. Only
// missing connectivity is distinguished.
func failureState(kind result.ErrorKind) ListState {
	switch kind {
	case result.KindNoConnectivity:
		return NoConnectivityError()
	case result.KindNetwork, result.KindServer, result.KindNotFound, result.KindUnknown:
		return NetworkError()
	default:
		return NetworkError()
	}
}
