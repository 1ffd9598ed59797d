package cache

import (
	"net/http"
	"time"
)

// CacheEntry represents a cached API response.
type CacheEntry struct {
	// Data is the response body
	Data []byte `json:"data"`

	// ETag for conditional requests (If-None-Match)
	ETag string `json:"etag,omitempty"`

	// LastModified from the Last-Modified header (If-Modified-Since)
	LastModified time.Time `json:"last_modified,omitempty"`

	// StatusCode is the HTTP status code of the cached response
	StatusCode int `json:"status_code"`

	// Headers are the response headers
	Headers http.Header `json:"headers,omitempty"`

	// CachedAt is when the response was stored or last revalidated
	CachedAt time.Time `json:"cached_at"`

	// FreshUntil ends the acceptance window
	FreshUntil time.Time `json:"fresh_until"`
}

// IsFresh reports whether the entry may be served without contacting the API.
func (e *CacheEntry) IsFresh() bool {
	return time.Now().Before(e.FreshUntil)
}

// Age returns how long ago the entry was stored or revalidated.
func (e *CacheEntry) Age() time.Duration {
	return time.Since(e.CachedAt)
}

// TTL returns the time until the entry becomes stale.
// Returns 0 if already stale.
func (e *CacheEntry) TTL() time.Duration {
	ttl := time.Until(e.FreshUntil)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Refresh restarts the acceptance window, as after a 304 Not Modified.
func (e *CacheEntry) Refresh(maxAge time.Duration) {
	now := time.Now()
	e.CachedAt = now
	e.FreshUntil = now.Add(maxAge)
}
