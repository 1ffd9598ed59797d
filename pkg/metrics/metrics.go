// Package metrics provides the Prometheus registry for the catalog client.
// Metrics owned by a single package (gateway, client, cache, pagination) are
// defined there; metrics shared between packages live here.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the default Prometheus registry used by the catalog client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the registry served on /metrics.
var Gatherer = prometheus.DefaultGatherer

// StaleResultsTotal counts fetch completions a view controller dropped
// because a Retry or Close superseded them. Labelled by controller
// ("list", "detail").
var StaleResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_stale_results_total",
	Help: "Total fetch completions dropped because a newer operation superseded them",
}, []string{"controller"})

// Metrics Documentation
//
// Gateway Metrics (pkg/gateway):
//   - catalog_fetches_total{call, outcome} (Counter): Fetches by call site ("list", "item") and outcome ("success" or "failure")
//   - catalog_fetch_errors_total{kind} (Counter): Failed fetches by error kind (network, server, not_found, no_connectivity, unknown)
//   - catalog_fetch_duration_seconds{call} (Histogram): Fetch duration by call site
//   - catalog_offline_total (Counter): Fetches short-circuited by the connectivity gate
//
// Request Metrics (pkg/client):
//   - catalog_http_requests_total{endpoint, status} (Counter): HTTP requests by endpoint and status
//   - catalog_http_request_duration_seconds{endpoint} (Histogram): HTTP request duration by endpoint
//
// Cache Metrics (pkg/cache):
//   - catalog_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - catalog_cache_misses_total (Counter): Cache misses
//   - catalog_cache_size_bytes{layer="redis"} (Gauge): Size of the last stored entry in bytes
//   - catalog_304_responses_total (Counter): 304 Not Modified responses
//   - catalog_conditional_requests_total (Counter): Revalidation requests sent with If-None-Match
//   - catalog_cache_errors_total{operation} (Counter): Cache operation errors
//
// View Metrics (pkg/pagination, pkg/detail):
//   - catalog_pages_loaded_total (Counter): Non-empty pages appended to a list view
//   - catalog_stale_results_total{controller} (Counter): Superseded completions dropped
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(catalog_cache_hits_total[5m])) /
//   (sum(rate(catalog_cache_hits_total[5m])) + sum(rate(catalog_cache_misses_total[5m])))
//
//   # Offline share of fetches
//   rate(catalog_offline_total[5m]) / sum(rate(catalog_fetches_total[5m]))
//
//   # Failure rate by kind
//   sum by (kind) (rate(catalog_fetch_errors_total[5m]))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(catalog_http_request_duration_seconds_bucket[5m]))
//
//   # 304 Response Rate
//   rate(catalog_304_responses_total[5m]) / sum(rate(catalog_http_requests_total[5m]))
