// Package cache provides the catalog client's HTTP response cache with a
// Redis backend.
//
// Responses are accepted from the cache for a fixed window after they were
// stored (the max-age the client advertises with every request, 60s by
// default). After the window an entry is stale: it is kept for a while
// longer so the client can revalidate it with a conditional request instead
// of downloading the body again.
//
// - Fixed acceptance window (Cache-Control: public, max-age=60)
// - ETag support for conditional requests (If-None-Match)
// - Last-Modified support (If-Modified-Since)
// - Stale entries retained for revalidation, then evicted by Redis TTL
// - Prometheus metrics for observability
// - Deterministic cache key generation
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient, cache.DefaultConfig())
//
//	key := cache.CacheKey{
//		Endpoint:    "/pokemon",
//		QueryParams: url.Values{"limit": {"20"}, "offset": {"0"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	switch {
//	case errors.Is(err, cache.ErrCacheMiss):
//		// fetch from the API
//	case err == nil && entry.IsFresh():
//		// serve entry.Data
//	case err == nil:
//		// stale: revalidate
//	}
//
// # Conditional Requests
//
//	if cache.ShouldMakeConditionalRequest(entry) {
//		cache.AddConditionalHeaders(req, entry)
//		// 304 Not Modified means entry.Data is still current
//	}
//
// # Metrics
//
//   - catalog_cache_hits_total{layer="redis"} - Fresh cache hits
//   - catalog_cache_misses_total - Cache misses (absent or corrupt entries)
//   - catalog_cache_size_bytes{layer="redis"} - Size of the last stored entry
//   - catalog_304_responses_total - Successful revalidations
//   - catalog_conditional_requests_total - Revalidation requests sent
//   - catalog_cache_errors_total{operation} - Cache operation errors
package cache
