package health

import (
	"runtime"
	"time"

	"github.com/dd0wney/realm-atlas/pkg/algorithms"
	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// GraphSource returns the graph being served, or nil before it is loaded
type GraphSource func() *storage.Graph

// SimpleCheck creates a check that always reports healthy
func SimpleCheck(name string) CheckFunc {
	return func() Check {
		return Check{
			Name:        name,
			Status:      StatusHealthy,
			LastChecked: time.Now(),
		}
	}
}

// DrainingCheck reports unhealthy once draining returns true, so load
// balancers stop routing to a server that is shutting down
func DrainingCheck(draining func() bool) CheckFunc {
	return func() Check {
		check := Check{Name: "server", LastChecked: time.Now()}
		if draining() {
			check.Status = StatusUnhealthy
			check.Message = "Server is shutting down"
		} else {
			check.Status = StatusHealthy
			check.Message = "Accepting requests"
		}
		return check
	}
}

// DatasetCheck reports whether a dataset has been loaded into a graph
func DatasetCheck(name string, source GraphSource) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "dataset",
			Details: map[string]any{"dataset": name},
		}

		graph := source()
		if graph == nil {
			check.Status = StatusUnhealthy
			check.Message = "Dataset not loaded"
			return check
		}

		check.Details["locations"] = graph.NodeCount()
		check.Details["routes"] = graph.RouteCount()

		if graph.NodeCount() == 0 {
			check.Status = StatusUnhealthy
			check.Message = "Dataset is empty"
		} else {
			check.Status = StatusHealthy
			check.Message = "Dataset loaded"
		}
		return check
	}
}

// ConnectivityCheck reports degraded when some locations cannot reach each
// other, since safest-path queries between them will fail
func ConnectivityCheck(source GraphSource) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "connectivity",
			Details: make(map[string]any),
		}

		graph := source()
		if graph == nil {
			check.Status = StatusUnhealthy
			check.Message = "Dataset not loaded"
			return check
		}

		components := len(algorithms.ConnectedComponents(graph).Communities)
		check.Details["components"] = components

		if components > 1 {
			check.Status = StatusDegraded
			check.Message = "Graph is disconnected"
		} else {
			check.Status = StatusHealthy
			check.Message = "Graph is connected"
		}
		return check
	}
}

// MemoryCheck creates a health check for memory usage
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "memory",
			Details: make(map[string]any),
		}

		alloc, sys := getUsage()

		check.Details["alloc_bytes"] = alloc
		check.Details["sys_bytes"] = sys

		if sys > 0 && float64(alloc)/float64(sys)*100 > 90 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}

		return check
	}
}

// RuntimeMemory reads heap usage from the Go runtime
func RuntimeMemory() (alloc, sys uint64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc, m.Sys
}
