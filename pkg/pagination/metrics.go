package pagination

import (
	"github.com/Sternrassler/catalog-client/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const controllerLabel = "list"

var (
	pagesLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_pages_loaded_total",
		Help: "Total non-empty pages appended to a list view",
	})

	staleResults = metrics.StaleResultsTotal.WithLabelValues(controllerLabel)
)
