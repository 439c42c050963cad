package algorithms

// Community represents a detected community
type Community struct {
	ID             int
	Members        []int // Location indices, ascending
	Size           int
	InternalEdges  int     // Routes with both endpoints inside
	InternalDanger int     // Sum of danger over internal routes
	Density        float64 // InternalEdges / (Size*(Size-1)/2), 0 for singletons
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Communities   []*Community
	Modularity    float64 // Quality measure of the partitioning
	NodeCommunity []int   // Location index -> Community ID
	Levels        int     // Louvain aggregation levels that improved modularity
}

// arc is one weighted neighbour in an undirected graph
type arc struct {
	to     int
	weight float64
}

// weightedGraph is an undirected weighted graph used by community
// detection. Adjacency lists never contain self references; internal
// weight of an aggregated node is kept in selfLoop.
type weightedGraph struct {
	adj      [][]arc
	selfLoop []float64
	members  [][]int // Original location indices represented by each node
}

func (g *weightedGraph) size() int {
	return len(g.adj)
}

// strength is the weighted degree of node u; self-loops count twice
func (g *weightedGraph) strength(u int) float64 {
	s := 2 * g.selfLoop[u]
	for _, a := range g.adj[u] {
		s += a.weight
	}
	return s
}

// totalWeight is the sum of all edge weights, each undirected edge once
func (g *weightedGraph) totalWeight() float64 {
	total := 0.0
	for u := range g.adj {
		total += g.selfLoop[u]
		for _, a := range g.adj[u] {
			if a.to > u {
				total += a.weight
			}
		}
	}
	return total
}
