package algorithms

import (
	"container/heap"
	"errors"

	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// ErrNoPath is returned when the end location cannot be reached from the start.
var ErrNoPath = errors.New("no path between locations")

// PathStep is one traversed route of a path
type PathStep struct {
	From   string
	To     string
	Danger int
	Type   storage.RouteType
}

// Path is the result of a safest-path search
type Path struct {
	Locations   []string
	Steps       []PathStep
	TotalDanger int
}

// pqItem is a tentative distance for a location index
type pqItem struct {
	node     int
	distance int
}

// distanceQueue orders items by distance, then by location insertion index,
// which makes settle order fully deterministic.
type distanceQueue []pqItem

func (q distanceQueue) Len() int { return len(q) }
func (q distanceQueue) Less(i, j int) bool {
	if q[i].distance != q[j].distance {
		return q[i].distance < q[j].distance
	}
	return q[i].node < q[j].node
}
func (q distanceQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *distanceQueue) Push(x any)   { *q = append(*q, x.(pqItem)) }
func (q *distanceQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// SafestPath runs Dijkstra over danger weights from start and stops as soon
// as end is settled. A predecessor is replaced only by a strictly shorter
// distance, so among equally safe paths the one discovered first wins.
func SafestPath(graph *storage.Graph, start, end int) (*Path, error) {
	if start == end {
		return &Path{Locations: []string{graph.LocationAt(start).Name}}, nil
	}

	n := graph.NodeCount()
	distance := make([]int, n)
	parent := make([]int, n)
	via := make([]storage.Edge, n)
	settled := make([]bool, n)
	for i := range distance {
		distance[i] = -1
		parent[i] = -1
	}
	distance[start] = 0

	pq := &distanceQueue{{node: start, distance: 0}}
	for pq.Len() > 0 {
		current := heap.Pop(pq).(pqItem)
		if settled[current.node] {
			continue
		}
		settled[current.node] = true

		if current.node == end {
			return buildPath(graph, start, end, parent, via, distance[end]), nil
		}

		for _, edge := range graph.Outgoing(current.node) {
			next := edge.ToIndex
			if settled[next] {
				continue
			}
			alt := current.distance + edge.Danger
			if distance[next] < 0 || alt < distance[next] {
				distance[next] = alt
				parent[next] = current.node
				via[next] = edge
				heap.Push(pq, pqItem{node: next, distance: alt})
			}
		}
	}

	return nil, ErrNoPath
}

// buildPath walks the parent chain back from end
func buildPath(graph *storage.Graph, start, end int, parent []int, via []storage.Edge, total int) *Path {
	steps := make([]PathStep, 0)
	for node := end; node != start; node = parent[node] {
		e := via[node]
		steps = append(steps, PathStep{From: e.From, To: e.To, Danger: e.Danger, Type: e.Type})
	}

	// Reverse into start..end order
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}

	locations := make([]string, 0, len(steps)+1)
	locations = append(locations, graph.LocationAt(start).Name)
	for _, s := range steps {
		locations = append(locations, s.To)
	}

	return &Path{Locations: locations, Steps: steps, TotalDanger: total}
}
