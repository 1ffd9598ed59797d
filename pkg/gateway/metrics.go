package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetches_total",
		Help: "Total gateway fetches by call site and outcome",
	}, []string{"call", "outcome"})

	fetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_errors_total",
		Help: "Total failed gateway fetches by error kind",
	}, []string{"kind"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Gateway fetch duration in seconds by call site",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"call"})

	offlineTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_offline_total",
		Help: "Total fetches short-circuited because no network path was available",
	})
)
