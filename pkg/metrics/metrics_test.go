package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.GetGauge().GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.QueriesTotal == nil || r.QueryDuration == nil {
		t.Error("query metrics not initialized")
	}
	if r.GraphLocationsTotal == nil || r.GraphRoutesTotal == nil {
		t.Error("graph metrics not initialized")
	}
	if r.HTTPRequestsTotal == nil {
		t.Error("HTTP metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestNewRegistry_Independent(t *testing.T) {
	// Separate registries must not collide on registration
	a := NewRegistry()
	b := NewRegistry()
	a.RecordQuery("safest_path", StatusOK, time.Millisecond)

	counter, _ := b.QueriesTotal.GetMetricWithLabelValues("safest_path", StatusOK)
	if v := counterValue(t, counter); v != 0 {
		t.Errorf("registry b saw %v queries, want 0", v)
	}
}

func TestRecordQuery(t *testing.T) {
	r := NewRegistry()

	r.RecordQuery("safest_path", StatusOK, 2*time.Millisecond)
	r.RecordQuery("safest_path", StatusOK, 3*time.Millisecond)
	r.RecordQuery("safest_path", StatusNoPath, time.Millisecond)

	ok, err := r.QueriesTotal.GetMetricWithLabelValues("safest_path", StatusOK)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if v := counterValue(t, ok); v != 2 {
		t.Errorf("ok count = %v, want 2", v)
	}

	noPath, _ := r.QueriesTotal.GetMetricWithLabelValues("safest_path", StatusNoPath)
	if v := counterValue(t, noPath); v != 1 {
		t.Errorf("no_path count = %v, want 1", v)
	}

	hist, err := r.QueryDuration.GetMetricWithLabelValues("safest_path")
	if err != nil {
		t.Fatalf("Failed to get histogram: %v", err)
	}
	var metric dto.Metric
	if err := hist.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write histogram: %v", err)
	}
	if metric.GetHistogram().GetSampleCount() != 3 {
		t.Errorf("duration samples = %d, want 3", metric.GetHistogram().GetSampleCount())
	}
}

func TestRecordPathAndRegions(t *testing.T) {
	r := NewRegistry()

	r.RecordPath(43, 10)
	r.RecordRegions(5, 0.61)

	var metric dto.Metric
	if err := r.PathDanger.Write(&metric); err != nil {
		t.Fatalf("Failed to write histogram: %v", err)
	}
	if metric.GetHistogram().GetSampleSum() != 43 {
		t.Errorf("path danger sum = %v, want 43", metric.GetHistogram().GetSampleSum())
	}

	if v := gaugeValue(t, r.CommunitiesFound); v != 5 {
		t.Errorf("communities = %v, want 5", v)
	}
	if v := gaugeValue(t, r.CommunityModularity); v != 0.61 {
		t.Errorf("modularity = %v, want 0.61", v)
	}
}

func TestSetGraphStats(t *testing.T) {
	r := NewRegistry()

	r.SetGraphStats("middle-earth-classic", "embedded", 20, 19, 1)
	r.SetGraphStats("middle-earth", "embedded", 32, 38, 1)

	if v := gaugeValue(t, r.GraphLocationsTotal); v != 32 {
		t.Errorf("locations = %v, want 32", v)
	}
	if v := gaugeValue(t, r.GraphRoutesTotal); v != 38 {
		t.Errorf("routes = %v, want 38", v)
	}

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "realm_graph_dataset_info" {
			continue
		}
		if len(mf.GetMetric()) != 1 {
			t.Errorf("dataset info has %d series, want 1 after reload", len(mf.GetMetric()))
		}
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics(time.Now().Add(-time.Minute))

	if v := gaugeValue(t, r.UptimeSeconds); v < 60 {
		t.Errorf("uptime = %v, want >= 60", v)
	}
	if v := gaugeValue(t, r.GoRoutines); v < 1 {
		t.Errorf("goroutines = %v, want >= 1", v)
	}
}

func TestInstrumentAndHandler(t *testing.T) {
	r := NewRegistry()

	h := r.Instrument("/graphql", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graphql", nil))

	counter, _ := r.HTTPRequestsTotal.GetMetricWithLabelValues("POST", "/graphql", "418")
	if v := counterValue(t, counter); v != 1 {
		t.Errorf("request count = %v, want 1", v)
	}
	if v := gaugeValue(t, r.HTTPRequestsInFlight); v != 0 {
		t.Errorf("in-flight = %v, want 0", v)
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "realm_http_requests_total") {
		t.Errorf("exposition missing realm_http_requests_total:\n%s", body)
	}
}
