package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphLocationsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "realm_graph_locations_total",
			Help: "Number of locations in the loaded graph",
		},
	)

	r.GraphRoutesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "realm_graph_routes_total",
			Help: "Number of bidirectional routes in the loaded graph",
		},
	)

	r.GraphComponentsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "realm_graph_components_total",
			Help: "Number of connected components in the loaded graph",
		},
	)

	r.GraphDatasetInfo = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "realm_graph_dataset_info",
			Help: "Loaded dataset, always 1",
		},
		[]string{"dataset", "source"},
	)
}
