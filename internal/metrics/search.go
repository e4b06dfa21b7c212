package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search dispatch metrics. Registered explicitly via RegisterSearchMetrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "handlescout",
			Name:      "searches_total",
			Help:      "Total number of dispatched searches",
		},
		[]string{"mode", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "handlescout",
			Name:      "search_duration_seconds",
			Help:      "Search duration from submission to settlement of all calls",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"mode"},
	)

	SecondaryDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "handlescout",
			Name:      "secondary_degraded_total",
			Help:      "Smart searches whose domain-suggestion call failed and was tolerated",
		},
	)
)

// RegisterSearchMetrics registers search metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SecondaryDegradedTotal)
}
