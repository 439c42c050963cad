package algorithms

import (
	"container/heap"

	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// brandesCentrality runs one Dijkstra-based Brandes pass per source and
// returns raw (unnormalised) betweenness indexed by location. Paths of equal
// total danger share the dependency through sigma counting.
func brandesCentrality(graph *storage.Graph) []float64 {
	n := graph.NodeCount()
	betweenness := make([]float64, n)

	stack := make([]int, 0, n)
	predecessors := make([][]int, n)
	sigma := make([]float64, n)
	distance := make([]int, n)
	settled := make([]bool, n)
	delta := make([]float64, n)

	for source := 0; source < n; source++ {
		stack = stack[:0]
		for i := 0; i < n; i++ {
			predecessors[i] = predecessors[i][:0]
			sigma[i] = 0
			distance[i] = -1
			settled[i] = false
			delta[i] = 0
		}
		sigma[source] = 1
		distance[source] = 0

		pq := &distanceQueue{{node: source, distance: 0}}
		for pq.Len() > 0 {
			current := heap.Pop(pq).(pqItem)
			v := current.node
			if settled[v] {
				continue
			}
			settled[v] = true
			stack = append(stack, v)

			for _, edge := range graph.Outgoing(v) {
				w := edge.ToIndex
				alt := distance[v] + edge.Danger

				switch {
				case distance[w] < 0 || alt < distance[w]:
					distance[w] = alt
					sigma[w] = sigma[v]
					predecessors[w] = append(predecessors[w][:0], v)
					heap.Push(pq, pqItem{node: w, distance: alt})
				case alt == distance[w]:
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagate dependencies in reverse settle order
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	return betweenness
}

// BetweennessCentrality calculates weighted betweenness centrality for all
// locations, treating danger as the edge length. Scores are normalised by
// 1/((n-1)(n-2)) for graphs with more than two locations, so every score
// falls in [0, 1].
func BetweennessCentrality(graph *storage.Graph) []float64 {
	betweenness := brandesCentrality(graph)

	n := graph.NodeCount()
	if n > 2 {
		scale := 1.0 / float64((n-1)*(n-2))
		for i := range betweenness {
			betweenness[i] *= scale
		}
	}

	return betweenness
}

// CommunityDegree returns, for each location, how many of its routes lead to
// another location in the same community. nodeCommunity maps a location index
// to its community id.
func CommunityDegree(graph *storage.Graph, nodeCommunity []int) []int {
	degree := make([]int, graph.NodeCount())
	for i := range degree {
		for _, e := range graph.Outgoing(i) {
			if nodeCommunity[e.ToIndex] == nodeCommunity[i] {
				degree[i]++
			}
		}
	}
	return degree
}
