package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("equivalent_resistance/search")

var (
	// searchRuns counts searches by strategy and outcome.
	searchRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resistor_search_runs_total",
		Help: "Total searches by strategy and result",
	}, []string{"strategy", "result"})

	// searchDuration tracks wall time per search.
	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resistor_search_duration_seconds",
		Help:    "Search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
	}, []string{"strategy"})

	// layerDistinct tracks distinct values per built layer.
	layerDistinct = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resistor_search_layer_distinct_values",
		Help:    "Distinct resistance values per search layer",
		Buckets: prometheus.ExponentialBuckets(1, 4, 14),
	})
)
