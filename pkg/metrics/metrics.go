package metrics

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Query status label values
const (
	StatusOK      = "ok"
	StatusNoPath  = "no_path"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordQuery records an analysis query execution
func (r *Registry) RecordQuery(queryType, status string, duration time.Duration) {
	r.QueriesTotal.WithLabelValues(queryType, status).Inc()
	r.QueryDuration.WithLabelValues(queryType).Observe(duration.Seconds())
}

// RecordPath records the danger and length of a safest path
func (r *Registry) RecordPath(totalDanger, hops int) {
	r.PathDanger.Observe(float64(totalDanger))
	r.PathHops.Observe(float64(hops))
}

// RecordRegions records the outcome of a regional grouping
func (r *Registry) RecordRegions(count int, modularity float64) {
	r.CommunitiesFound.Set(float64(count))
	r.CommunityModularity.Set(modularity)
}

// SetGraphStats publishes the shape of the loaded graph. Only one dataset
// is reported at a time.
func (r *Registry) SetGraphStats(dataset, source string, locations, routes, components int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.GraphDatasetInfo.Reset()
	r.GraphDatasetInfo.WithLabelValues(dataset, source).Set(1)
	r.GraphLocationsTotal.Set(float64(locations))
	r.GraphRoutesTotal.Set(float64(routes))
	r.GraphComponentsTotal.Set(float64(components))
}

// UpdateSystemMetrics refreshes uptime, goroutine and memory gauges
func (r *Registry) UpdateSystemMetrics(started time.Time) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	r.UptimeSeconds.Set(time.Since(started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(mem.Alloc))
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Instrument wraps h so every request is counted under the given path label
func (r *Registry) Instrument(path string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.HTTPRequestsInFlight.Inc()
		defer r.HTTPRequestsInFlight.Dec()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, req)
		r.RecordHTTPRequest(req.Method, path, rec.status, time.Since(start))
	})
}
