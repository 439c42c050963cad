package analysis

import (
	"errors"

	"github.com/dd0wney/realm-atlas/pkg/logging"
	"github.com/dd0wney/realm-atlas/pkg/metrics"
	"github.com/dd0wney/realm-atlas/pkg/storage"
	"github.com/google/uuid"
)

// Engine runs queries against one graph and adds query ids, structured
// logging and metrics around them. It holds no mutable state besides the
// collaborators it is given, so it is safe for concurrent use.
type Engine struct {
	graph   *storage.Graph
	logger  logging.Logger
	metrics *metrics.Registry
	newID   func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine's logger
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records query metrics in the given registry
func WithMetrics(registry *metrics.Registry) Option {
	return func(e *Engine) {
		e.metrics = registry
	}
}

// NewEngine creates an engine over graph. Without options it logs nothing
// and records no metrics.
func NewEngine(graph *storage.Graph, opts ...Option) *Engine {
	e := &Engine{
		graph:  graph,
		logger: logging.NewNopLogger(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logging.Component("analysis"))
	return e
}

// Graph returns the graph the engine queries
func (e *Engine) Graph() *storage.Graph {
	return e.graph
}

// SafestPath finds the lowest-danger route between two locations
func (e *Engine) SafestPath(start, end string) (*PathResult, error) {
	log, timer := e.begin(QuerySafestPath, logging.From(start), logging.To(end))

	result, err := FindSafestPath(e.graph, start, end)
	e.finish(QuerySafestPath, log, timer, err)
	if err != nil {
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.RecordPath(result.TotalDanger, len(result.Steps))
	}
	timer.End(logging.Danger(result.TotalDanger), logging.Int("hops", len(result.Steps)))
	return result, nil
}

// StrategicLocations ranks the topN most strategic locations
func (e *Engine) StrategicLocations(topN int) ([]LocationStat, error) {
	log, timer := e.begin(QueryStrategic, logging.Int("top", topN))

	stats, err := RankStrategicLocations(e.graph, topN)
	e.finish(QueryStrategic, log, timer, err)
	if err != nil {
		return nil, err
	}

	timer.End(logging.Count(len(stats)))
	return stats, nil
}

// Regions groups locations into regions at the given resolution
func (e *Engine) Regions(resolution float64) ([]CommunityStat, error) {
	log, timer := e.begin(QueryRegions, logging.Resolution(resolution))

	regions, modularity, err := groupRegions(e.graph, resolution)
	e.finish(QueryRegions, log, timer, err)
	if err != nil {
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.RecordRegions(len(regions), modularity)
	}
	timer.End(logging.Count(len(regions)), logging.Float64("modularity", round2(modularity)))
	return regions, nil
}

// Nearby lists the locations within hops routes of origin
func (e *Engine) Nearby(origin string, hops, maxDanger int) (*NearbyResult, error) {
	log, timer := e.begin(QueryNearby, logging.Location(origin), logging.Int("hops", hops))

	result, err := FindNearby(e.graph, origin, hops, maxDanger)
	e.finish(QueryNearby, log, timer, err)
	if err != nil {
		return nil, err
	}

	timer.End(logging.Count(result.Total))
	return result, nil
}

// Summary describes the graph, including its regions at resolution
func (e *Engine) Summary(resolution float64) (*GraphSummary, error) {
	return Summarize(e.graph, resolution)
}

func (e *Engine) begin(op string, fields ...logging.Field) (logging.Logger, *logging.TimedOperation) {
	log := e.logger.With(logging.QueryID(e.newID()), logging.Query(op))
	return log, logging.StartTimer(log, "query complete", fields...)
}

// finish records the query outcome. Successful queries are logged by the
// caller so result details can be attached.
func (e *Engine) finish(op string, log logging.Logger, timer *logging.TimedOperation, err error) {
	status := metrics.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, ErrNoPathFound):
		status = metrics.StatusNoPath
		timer.EndWithLevel(logging.WarnLevel, "no path between locations", logging.Error(err))
	case IsInvalidInput(err):
		status = metrics.StatusInvalid
		log.Warn("invalid query", logging.Error(err))
	default:
		status = metrics.StatusError
		timer.EndError(err)
	}

	if e.metrics != nil {
		e.metrics.RecordQuery(op, status, timer.Elapsed())
	}
}
