package algorithms

import (
	"errors"
	"math"
	"sort"

	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// DefaultResolution is the standard modularity resolution
const DefaultResolution = 1.0

// louvainThreshold is the minimum modularity gain for another level
const louvainThreshold = 1e-7

// ErrNonPositiveResolution is returned for a resolution that is not a
// positive finite number
var ErrNonPositiveResolution = errors.New("resolution must be positive and finite")

// ValidResolution reports whether resolution can be used for modularity.
// NaN and +Inf are rejected along with zero and negatives.
func ValidResolution(resolution float64) bool {
	return resolution > 0 && !math.IsInf(resolution, 1)
}

// undirectedGraph collapses the symmetric directed route graph into an
// undirected graph weighted by danger. Neighbour order follows the
// location's outgoing edge order, which is route insertion order.
func undirectedGraph(graph *storage.Graph) *weightedGraph {
	n := graph.NodeCount()
	g := &weightedGraph{
		adj:      make([][]arc, n),
		selfLoop: make([]float64, n),
		members:  make([][]int, n),
	}
	for i := 0; i < n; i++ {
		g.members[i] = []int{i}
		for _, e := range graph.Outgoing(i) {
			g.adj[i] = append(g.adj[i], arc{to: e.ToIndex, weight: float64(e.Danger)})
		}
	}
	return g
}

// Louvain detects communities by greedy modularity optimisation.
//
// Each level starts from singleton communities and repeatedly moves nodes
// (in index order) to the neighbouring community with the strictly largest
// modularity gain until a full pass makes no move. Communities are then
// collapsed into single nodes and the process repeats until a level improves
// modularity by no more than 1e-7. Larger resolutions favour more, smaller
// communities.
func Louvain(graph *storage.Graph, resolution float64) (*CommunityDetectionResult, error) {
	if !ValidResolution(resolution) {
		return nil, ErrNonPositiveResolution
	}

	base := undirectedGraph(graph)
	n := base.size()

	partition := make([][]int, n)
	for i := range partition {
		partition[i] = []int{i}
	}

	m := base.totalWeight()
	levels := 0
	if m > 0 {
		current := base
		mod := modularity(current, singletons(n), resolution)

		outer, inner, improved := oneLevel(current, m, resolution)
		for improved {
			partition = outer
			levels++

			newMod := modularity(current, inner, resolution)
			if newMod-mod <= louvainThreshold {
				break
			}
			mod = newMod

			current = aggregate(current, inner)
			outer, inner, improved = oneLevel(current, m, resolution)
		}
	}

	return buildCommunityResult(graph, base, partition, resolution, levels), nil
}

// oneLevel runs the local moving phase on g. It returns the communities as
// original location indices, the same communities as node indices of g,
// and whether any node moved.
func oneLevel(g *weightedGraph, m, resolution float64) ([][]int, [][]int, bool) {
	n := g.size()
	nodeCommunity := make([]int, n)
	strength := make([]float64, n)
	communityTotal := make([]float64, n)
	for u := 0; u < n; u++ {
		nodeCommunity[u] = u
		strength[u] = g.strength(u)
		communityTotal[u] = strength[u]
	}

	// Scratch space for per-community neighbour weights
	weightTo := make([]float64, n)
	touched := make([]int, 0, n)
	seen := make([]bool, n)

	twoMSquared := 2 * m * m
	improved := false
	for moves := 1; moves > 0; {
		moves = 0
		for u := 0; u < n; u++ {
			touched = touched[:0]
			for _, a := range g.adj[u] {
				c := nodeCommunity[a.to]
				if !seen[c] {
					seen[c] = true
					touched = append(touched, c)
				}
				weightTo[c] += a.weight
			}

			own := nodeCommunity[u]
			degree := strength[u]
			communityTotal[own] -= degree
			removeCost := -weightTo[own]/m + resolution*communityTotal[own]*degree/twoMSquared

			bestGain := 0.0
			best := own
			for _, c := range touched {
				gain := removeCost + weightTo[c]/m - resolution*communityTotal[c]*degree/twoMSquared
				if gain > bestGain {
					bestGain = gain
					best = c
				}
			}
			communityTotal[best] += degree

			for _, c := range touched {
				seen[c] = false
				weightTo[c] = 0
			}
			// own may not be among the neighbours
			weightTo[own] = 0

			if best != own {
				nodeCommunity[u] = best
				improved = true
				moves++
			}
		}
	}

	inner := make([][]int, n)
	for u := 0; u < n; u++ {
		c := nodeCommunity[u]
		inner[c] = append(inner[c], u)
	}

	compactInner := make([][]int, 0, n)
	outer := make([][]int, 0, n)
	for _, nodes := range inner {
		if len(nodes) == 0 {
			continue
		}
		compactInner = append(compactInner, nodes)
		members := make([]int, 0, len(nodes))
		for _, u := range nodes {
			members = append(members, g.members[u]...)
		}
		sort.Ints(members)
		outer = append(outer, members)
	}

	return outer, compactInner, improved
}

// aggregate collapses each community of g into one node. Weight between
// communities is summed; weight inside a community becomes a self-loop.
// Neighbour order follows first appearance while scanning g's edges.
func aggregate(g *weightedGraph, communities [][]int) *weightedGraph {
	k := len(communities)
	nodeCommunity := make([]int, g.size())
	h := &weightedGraph{
		adj:      make([][]arc, k),
		selfLoop: make([]float64, k),
		members:  make([][]int, k),
	}
	for c, nodes := range communities {
		for _, u := range nodes {
			nodeCommunity[u] = c
			h.members[c] = append(h.members[c], g.members[u]...)
		}
		sort.Ints(h.members[c])
	}

	for u := 0; u < g.size(); u++ {
		cu := nodeCommunity[u]
		h.selfLoop[cu] += g.selfLoop[u]
		for _, a := range g.adj[u] {
			if a.to < u {
				continue
			}
			cv := nodeCommunity[a.to]
			if cu == cv {
				h.selfLoop[cu] += a.weight
				continue
			}
			h.addWeight(cu, cv, a.weight)
		}
	}

	return h
}

// addWeight adds w to the undirected edge u-v, creating it if needed
func (g *weightedGraph) addWeight(u, v int, w float64) {
	for i := range g.adj[u] {
		if g.adj[u][i].to == v {
			g.adj[u][i].weight += w
			for j := range g.adj[v] {
				if g.adj[v][j].to == u {
					g.adj[v][j].weight += w
					break
				}
			}
			return
		}
	}
	g.adj[u] = append(g.adj[u], arc{to: v, weight: w})
	g.adj[v] = append(g.adj[v], arc{to: u, weight: w})
}

// modularity computes Newman modularity with resolution for a partition of
// g's nodes: sum over communities of L_c/m - γ(d_c/2m)².
func modularity(g *weightedGraph, communities [][]int, resolution float64) float64 {
	m := g.totalWeight()
	if m == 0 {
		return 0
	}

	community := make([]int, g.size())
	for c, nodes := range communities {
		for _, u := range nodes {
			community[u] = c
		}
	}

	q := 0.0
	for c, nodes := range communities {
		internal := 0.0
		degreeSum := 0.0
		for _, u := range nodes {
			internal += g.selfLoop[u]
			degreeSum += g.strength(u)
			for _, a := range g.adj[u] {
				if a.to > u && community[a.to] == c {
					internal += a.weight
				}
			}
		}
		q += internal/m - resolution*(degreeSum/(2*m))*(degreeSum/(2*m))
	}
	return q
}

func singletons(n int) [][]int {
	parts := make([][]int, n)
	for i := range parts {
		parts[i] = []int{i}
	}
	return parts
}

// buildCommunityResult numbers communities 1..k by their earliest member
// and fills in internal edge statistics.
func buildCommunityResult(graph *storage.Graph, base *weightedGraph, partition [][]int, resolution float64, levels int) *CommunityDetectionResult {
	sort.SliceStable(partition, func(i, j int) bool {
		return partition[i][0] < partition[j][0]
	})

	nodeCommunity := make([]int, graph.NodeCount())
	communities := make([]*Community, 0, len(partition))
	for i, members := range partition {
		id := i + 1
		for _, u := range members {
			nodeCommunity[u] = id
		}
		communities = append(communities, &Community{
			ID:      id,
			Members: members,
			Size:    len(members),
		})
	}

	for _, r := range graph.Routes() {
		from, _ := graph.IndexOf(r.From)
		to, _ := graph.IndexOf(r.To)
		if nodeCommunity[from] != nodeCommunity[to] {
			continue
		}
		c := communities[nodeCommunity[from]-1]
		c.InternalEdges++
		c.InternalDanger += r.Danger
	}

	for _, c := range communities {
		if c.Size > 1 {
			possible := float64(c.Size*(c.Size-1)) / 2
			c.Density = float64(c.InternalEdges) / possible
		}
	}

	return &CommunityDetectionResult{
		Communities:   communities,
		Modularity:    modularity(base, partition, resolution),
		NodeCommunity: nodeCommunity,
		Levels:        levels,
	}
}
