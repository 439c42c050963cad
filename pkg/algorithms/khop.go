package algorithms

import (
	"fmt"

	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// KHopOptions configures the k-hop neighbourhood traversal.
type KHopOptions struct {
	MaxHops   int // must be >= 1
	MaxDanger int // routes above this danger are not followed; 0 follows all
}

// KHopResult holds the BFS neighbourhood of a source location.
type KHopResult struct {
	Source         string
	ByHop          [][]string // ByHop[h-1] lists the locations first reached in h hops
	TotalReachable int
}

// DefaultHops is the neighbourhood depth used when a caller gives none
const DefaultHops = 2

type bfsEntry struct {
	index int
	hop   int
}

// KHopNeighbours performs a BFS from the location at source up to MaxHops
// levels, returning every location discovered grouped by distance. Within a
// hop, locations appear in the order their routes were authored. The source
// is never included in results.
func KHopNeighbours(graph *storage.Graph, source int, opts KHopOptions) (*KHopResult, error) {
	if opts.MaxHops < 1 {
		return nil, fmt.Errorf("MaxHops must be >= 1, got %d", opts.MaxHops)
	}
	if source < 0 || source >= graph.NodeCount() {
		return nil, fmt.Errorf("source index %d out of range", source)
	}

	result := &KHopResult{Source: graph.LocationAt(source).Name}

	visited := make([]bool, graph.NodeCount())
	visited[source] = true
	queue := []bfsEntry{{index: source, hop: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.hop >= opts.MaxHops {
			continue
		}
		nextHop := current.hop + 1

		// Routes are symmetric, so outgoing edges cover every neighbour
		for _, e := range graph.Outgoing(current.index) {
			if visited[e.ToIndex] {
				continue
			}
			if opts.MaxDanger > 0 && e.Danger > opts.MaxDanger {
				continue
			}
			visited[e.ToIndex] = true

			if len(result.ByHop) < nextHop {
				result.ByHop = append(result.ByHop, nil)
			}
			result.ByHop[nextHop-1] = append(result.ByHop[nextHop-1], e.To)
			result.TotalReachable++
			queue = append(queue, bfsEntry{index: e.ToIndex, hop: nextHop})
		}
	}

	return result, nil
}
