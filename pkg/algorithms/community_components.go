package algorithms

import (
	"container/list"
	"sort"

	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// ConnectedComponents finds all connected components of the route graph.
// Components are numbered from 1 in order of their earliest location, and
// members are listed ascending.
func ConnectedComponents(graph *storage.Graph) *CommunityDetectionResult {
	n := graph.NodeCount()
	visited := make([]bool, n)
	nodeCommunity := make([]int, n)
	communities := make([]*Community, 0)

	// BFS to find each component
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		component := &Community{
			ID:      len(communities) + 1,
			Members: make([]int, 0),
		}

		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			node := queue.Remove(queue.Front()).(int)
			component.Members = append(component.Members, node)
			nodeCommunity[node] = component.ID

			// Routes are symmetric, so outgoing edges reach every neighbour
			for _, edge := range graph.Outgoing(node) {
				if !visited[edge.ToIndex] {
					visited[edge.ToIndex] = true
					queue.PushBack(edge.ToIndex)
				}
			}
		}

		sort.Ints(component.Members)
		component.Size = len(component.Members)
		communities = append(communities, component)
	}

	return &CommunityDetectionResult{
		Communities:   communities,
		NodeCommunity: nodeCommunity,
	}
}
