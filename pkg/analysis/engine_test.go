package analysis

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/dd0wney/realm-atlas/pkg/logging"
	"github.com/dd0wney/realm-atlas/pkg/metrics"
	"github.com/dd0wney/realm-atlas/pkg/storage"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, graph *storage.Graph) (*Engine, *bytes.Buffer, *metrics.Registry) {
	t.Helper()
	var buf bytes.Buffer
	registry := metrics.NewRegistry()
	engine := NewEngine(graph,
		WithLogger(logging.NewJSONLogger(&buf, logging.DebugLevel)),
		WithMetrics(registry),
	)

	n := 0
	engine.newID = func() string {
		n++
		return fmt.Sprintf("q-%d", n)
	}
	return engine, &buf, registry
}

func logEntries(t *testing.T, buf *bytes.Buffer) []logging.LogEntry {
	t.Helper()
	var entries []logging.LogEntry
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var e logging.LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	return entries
}

func queryCount(t *testing.T, registry *metrics.Registry, query, status string) float64 {
	t.Helper()
	counter, err := registry.QueriesTotal.GetMetricWithLabelValues(query, status)
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, counter.Write(&m))
	return m.GetCounter().GetValue()
}

func TestEngine_SafestPath(t *testing.T) {
	engine, buf, registry := newTestEngine(t, loadGraph(t))

	result, err := engine.SafestPath("Bree", "Mount_Doom")
	require.NoError(t, err)
	assert.Equal(t, 43, result.TotalDanger)

	entries := logEntries(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "DEBUG", entries[0].Level)
	assert.Equal(t, "query complete", entries[0].Message)
	assert.Equal(t, "q-1", entries[0].Fields["query_id"])
	assert.Equal(t, QuerySafestPath, entries[0].Fields["query"])
	assert.Equal(t, "analysis", entries[0].Fields["component"])
	assert.Equal(t, "Bree", entries[0].Fields["from"])
	assert.EqualValues(t, 10, entries[0].Fields["hops"])
	assert.Contains(t, entries[0].Fields, "latency")

	assert.Equal(t, 1.0, queryCount(t, registry, QuerySafestPath, metrics.StatusOK))

	var hist dto.Metric
	require.NoError(t, registry.PathDanger.Write(&hist))
	assert.Equal(t, uint64(1), hist.GetHistogram().GetSampleCount())
	assert.Equal(t, 43.0, hist.GetHistogram().GetSampleSum())
}

func TestEngine_NoPath(t *testing.T) {
	island := smallGraph(t, []string{"A", "B", "C"}, []storage.Route{{From: "A", To: "B", Danger: 1}})
	engine, buf, registry := newTestEngine(t, island)

	_, err := engine.SafestPath("A", "C")
	require.Error(t, err)
	assert.True(t, IsNoPath(err))

	entries := logEntries(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, "no path between locations", entries[0].Message)
	assert.Equal(t, "q-1", entries[0].Fields["query_id"])
	assert.Equal(t, "A", entries[0].Fields["from"])
	assert.Contains(t, entries[0].Fields, "latency")

	assert.Equal(t, 1.0, queryCount(t, registry, QuerySafestPath, metrics.StatusNoPath))
	assert.Equal(t, 0.0, queryCount(t, registry, QuerySafestPath, metrics.StatusOK))
}

func TestEngine_InvalidInput(t *testing.T) {
	engine, buf, registry := newTestEngine(t, loadGraph(t))

	_, err := engine.StrategicLocations(0)
	assert.ErrorIs(t, err, ErrInvalidCount)
	_, err = engine.Regions(-1)
	assert.ErrorIs(t, err, ErrInvalidResolution)
	_, err = engine.SafestPath("Bree", "Atlantis")
	assert.ErrorIs(t, err, ErrInvalidLocation)

	assert.Equal(t, 1.0, queryCount(t, registry, QueryStrategic, metrics.StatusInvalid))
	assert.Equal(t, 1.0, queryCount(t, registry, QueryRegions, metrics.StatusInvalid))
	assert.Equal(t, 1.0, queryCount(t, registry, QuerySafestPath, metrics.StatusInvalid))

	entries := logEntries(t, buf)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, "WARN", e.Level)
		assert.Equal(t, fmt.Sprintf("q-%d", i+1), e.Fields["query_id"])
	}
}

func TestEngine_StrategicAndRegions(t *testing.T) {
	engine, _, registry := newTestEngine(t, loadGraph(t))

	stats, err := engine.StrategicLocations(3)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, "Isengard", stats[0].Name)

	regions, err := engine.Regions(1.0)
	require.NoError(t, err)
	assert.Len(t, regions, 4)

	var found, modularity dto.Metric
	require.NoError(t, registry.CommunitiesFound.Write(&found))
	require.NoError(t, registry.CommunityModularity.Write(&modularity))
	assert.Equal(t, 4.0, found.GetGauge().GetValue())
	assert.InDelta(t, 0.6037, modularity.GetGauge().GetValue(), 1e-3)

	assert.Equal(t, 1.0, queryCount(t, registry, QueryStrategic, metrics.StatusOK))
	assert.Equal(t, 1.0, queryCount(t, registry, QueryRegions, metrics.StatusOK))

	nearby, err := engine.Nearby("Rivendell", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, "Rivendell", nearby.Origin)
	assert.Len(t, nearby.Rings, 2)
	assert.Equal(t, 1.0, queryCount(t, registry, QueryNearby, metrics.StatusOK))
}

func TestEngine_DefaultsAreSilent(t *testing.T) {
	engine := NewEngine(loadGraph(t))

	_, err := engine.SafestPath("Shire", "Rivendell")
	require.NoError(t, err)
	_, err = engine.SafestPath("Shire", "Nowhere")
	require.Error(t, err)

	summary, err := engine.Summary(1.0)
	require.NoError(t, err)
	assert.Equal(t, 32, summary.Locations)
}

func TestEngine_UniqueQueryIDs(t *testing.T) {
	var buf bytes.Buffer
	engine := NewEngine(loadGraph(t), WithLogger(logging.NewJSONLogger(&buf, logging.DebugLevel)))

	for i := 0; i < 5; i++ {
		_, err := engine.StrategicLocations(1)
		require.NoError(t, err)
	}

	seen := make(map[any]bool)
	for _, e := range logEntries(t, &buf) {
		id := e.Fields["query_id"]
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate query id %v", id)
		seen[id] = true
	}
	assert.Len(t, seen, 5)
}
