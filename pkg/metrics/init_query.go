package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initQueryMetrics() {
	r.QueriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "realm_queries_total",
			Help: "Total number of analysis queries executed",
		},
		[]string{"query_type", "status"},
	)

	r.QueryDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "realm_query_duration_seconds",
			Help:    "Analysis query duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"query_type"},
	)

	r.PathDanger = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "realm_path_danger",
			Help:    "Total danger of safest paths found",
			Buckets: []float64{5, 10, 20, 30, 40, 50, 75, 100},
		},
	)

	r.PathHops = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "realm_path_hops",
			Help:    "Number of routes travelled by safest paths found",
			Buckets: []float64{1, 2, 4, 6, 8, 10, 15, 20},
		},
	)

	r.CommunitiesFound = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "realm_regions_last_count",
			Help: "Number of regions found by the most recent grouping",
		},
	)

	r.CommunityModularity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "realm_regions_last_modularity",
			Help: "Modularity of the most recent grouping",
		},
	)
}
