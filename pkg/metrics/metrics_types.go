package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Graph Metrics
	GraphLocationsTotal  prometheus.Gauge
	GraphRoutesTotal     prometheus.Gauge
	GraphComponentsTotal prometheus.Gauge
	GraphDatasetInfo     *prometheus.GaugeVec

	// Query Metrics
	QueriesTotal        *prometheus.CounterVec
	QueryDuration       *prometheus.HistogramVec
	PathDanger          prometheus.Histogram
	PathHops            prometheus.Histogram
	CommunitiesFound    prometheus.Gauge
	CommunityModularity prometheus.Gauge

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.Mutex
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initHTTPMetrics()
	r.initGraphMetrics()
	r.initQueryMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
