// Package client provides the catalog HTTP client: the transport behind
// catalog.Fetcher, with an optional Redis response cache.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/catalog-client/pkg/cache"
	"github.com/Sternrassler/catalog-client/pkg/gateway"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for HTTP requests.
var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_http_requests_total",
		Help: "Total catalog HTTP requests by endpoint and status",
	}, []string{"endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_http_request_duration_seconds",
		Help:    "Catalog HTTP request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})
)

const (
	// DefaultBaseURL is the public catalog API.
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 10 << 20

	endpointList = "list"
	endpointItem = "item"
)

// Client is the catalog HTTP client.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, e.g. "https://pokeapi.co/api/v2".
	BaseURL string

	// User-Agent header sent with every request.
	UserAgent string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Redis enables the response cache when set.
	Redis *redis.Client

	// CacheMaxAge is the acceptance window advertised with
	// Cache-Control: public, max-age=N and applied to cached responses.
	CacheMaxAge time.Duration

	// StaleTTL is how long stale responses are kept for revalidation.
	StaleTTL time.Duration
}

// DefaultConfig returns a default configuration. redis may be nil.
func DefaultConfig(redis *redis.Client, userAgent string) Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		UserAgent:   userAgent,
		Timeout:     DefaultTimeout,
		Redis:       redis,
		CacheMaxAge: cache.DefaultMaxAge,
		StaleTTL:    cache.DefaultStaleTTL,
	}
}

// New creates a new catalog client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https (got %q)", cfg.BaseURL)
	}

	if cfg.UserAgent == "" {
		return nil, ErrUserAgentRequired
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%w (got %s)", ErrInvalidTimeout, cfg.Timeout)
	}

	if cfg.CacheMaxAge < 0 {
		return nil, fmt.Errorf("%w (got %s)", ErrInvalidCacheMaxAge, cfg.CacheMaxAge)
	}

	logger := log.With().Str("component", "catalog-client").Logger()

	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		cacheManager = cache.NewManager(cfg.Redis, cache.Config{
			MaxAge:   cfg.CacheMaxAge,
			StaleTTL: cfg.StaleTTL,
		})
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: base,
		cache:   cacheManager,
		config:  cfg,
		logger:  logger,
	}, nil
}

// FetchList requests one page of the catalog.
func (c *Client) FetchList(ctx context.Context, limit, offset int) (*gateway.RawResponse, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	return c.get(ctx, endpointList, "/pokemon", query)
}

// FetchItem requests one item's details.
func (c *Client) FetchItem(ctx context.Context, id int) (*gateway.RawResponse, error) {
	return c.get(ctx, endpointItem, "/pokemon/"+strconv.Itoa(id), nil)
}

// get performs a GET against path with the cache in front of it.
// label is the low-cardinality endpoint name used for metrics.
func (c *Client) get(ctx context.Context, label, path string, query url.Values) (*gateway.RawResponse, error) {
	startTime := time.Now()
	defer func() {
		httpRequestDuration.WithLabelValues(label).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Check Cache
	cacheKey := cache.CacheKey{Endpoint: path, QueryParams: query}
	var cachedEntry *cache.CacheEntry
	if c.cache != nil {
		entry, err := c.cache.Get(ctx, cacheKey)
		switch {
		case err == nil:
			cachedEntry = entry
		case !errors.Is(err, cache.ErrCacheMiss):
			c.logger.Warn().Err(err).Str("endpoint", path).Msg("Cache get error")
		}
	}

	if cachedEntry != nil && cachedEntry.IsFresh() {
		c.logger.Debug().
			Str("endpoint", path).
			Dur("age", cachedEntry.Age()).
			Msg("Serving fresh cached response")
		httpRequestsTotal.WithLabelValues(label, "cache").Inc()
		return entryToRaw(cachedEntry), nil
	}

	// Step 2: Build request
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + path
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, &RequestError{Endpoint: path, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", c.cacheControl())

	// Step 3: Revalidate a stale entry
	if cachedEntry != nil && cache.ShouldMakeConditionalRequest(cachedEntry) {
		cache.AddConditionalHeaders(req, cachedEntry)
		cache.ConditionalRequests.Inc()
		c.logger.Debug().
			Str("endpoint", path).
			Str("etag", cachedEntry.ETag).
			Msg("Making conditional request")
	}

	// Step 4: Execute
	c.logger.Debug().
		Str("endpoint", path).
		Str("query", req.URL.RawQuery).
		Msg("Executing catalog request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		httpRequestsTotal.WithLabelValues(label, "network_error").Inc()
		c.logger.Debug().Err(err).Str("endpoint", path).Msg("HTTP request failed")
		return nil, &RequestError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	httpRequestsTotal.WithLabelValues(label, strconv.Itoa(resp.StatusCode)).Inc()

	// Step 5: Handle 304 Not Modified
	if resp.StatusCode == http.StatusNotModified && cachedEntry != nil {
		cache.NotModifiedResponses.Inc()
		c.logger.Debug().Str("endpoint", path).Msg("304 Not Modified - using cache")
		if err := c.cache.Touch(ctx, cacheKey, cachedEntry); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", path).Msg("Failed to refresh cache entry")
		}
		return entryToRaw(cachedEntry), nil
	}

	// Step 6: Update cache on success
	if c.cache != nil && cache.IsCacheable(resp) {
		entry, err := cache.ResponseToEntry(resp, c.cache.MaxAge())
		if err != nil {
			return nil, &RequestError{Endpoint: path, Err: err}
		}
		if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", path).Msg("Failed to cache response")
		} else {
			c.logger.Debug().
				Str("endpoint", path).
				Dur("ttl", entry.TTL()).
				Msg("Cached response")
		}
		return entryToRaw(entry), nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &RequestError{Endpoint: path, Err: fmt.Errorf("read response body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return nil, &RequestError{Endpoint: path, Err: fmt.Errorf("%w (limit %d bytes)", ErrBodyTooLarge, maxBodyBytes)}
	}

	return &gateway.RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
	}, nil
}

func (c *Client) cacheControl() string {
	return fmt.Sprintf("public, max-age=%d", int(c.config.CacheMaxAge/time.Second))
}

// entryToRaw converts a cache entry back to a raw response.
func entryToRaw(entry *cache.CacheEntry) *gateway.RawResponse {
	return &gateway.RawResponse{
		StatusCode: entry.StatusCode,
		Header:     entry.Headers.Clone(),
		Body:       entry.Data,
	}
}

// Close releases idle connections. The Redis client is owned by the caller.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// GetCache returns the cache manager, or nil when caching is disabled.
func (c *Client) GetCache() *cache.Manager {
	return c.cache
}
