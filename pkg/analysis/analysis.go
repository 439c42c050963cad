// Package analysis answers the read-only queries over a route graph:
// safest path, strategic locations and regional groups.
//
// All functions are pure reads of an immutable graph and are safe to call
// from any number of goroutines.
package analysis

import (
	"errors"
	"sort"

	"github.com/dd0wney/realm-atlas/pkg/algorithms"
	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// FindSafestPath returns the route from start to end with the lowest total
// danger. start == end yields a single-location path of danger 0.
func FindSafestPath(graph *storage.Graph, start, end string) (*PathResult, error) {
	from, ok := graph.IndexOf(start)
	if !ok {
		return nil, &QueryError{Op: QuerySafestPath, Location: start, Err: ErrInvalidLocation}
	}
	to, ok := graph.IndexOf(end)
	if !ok {
		return nil, &QueryError{Op: QuerySafestPath, Location: end, Err: ErrInvalidLocation}
	}

	path, err := algorithms.SafestPath(graph, from, to)
	if errors.Is(err, algorithms.ErrNoPath) {
		return nil, &QueryError{Op: QuerySafestPath, From: start, To: end, Err: ErrNoPathFound}
	}
	if err != nil {
		return nil, &QueryError{Op: QuerySafestPath, From: start, To: end, Err: err}
	}

	steps := make([]PathStep, len(path.Steps))
	for i, s := range path.Steps {
		steps[i] = PathStep{From: s.From, To: s.To, Danger: s.Danger, RouteType: s.Type}
	}

	return &PathResult{
		Path:        path.Locations,
		TotalDanger: path.TotalDanger,
		Steps:       steps,
	}, nil
}

// RankStrategicLocations ranks locations by weighted betweenness centrality
// and returns the topN highest. Equal scores keep dataset order. A topN
// larger than the graph returns every location.
func RankStrategicLocations(graph *storage.Graph, topN int) ([]LocationStat, error) {
	if topN <= 0 {
		return nil, &QueryError{Op: QueryStrategic, Err: ErrInvalidCount}
	}

	scores := algorithms.BetweennessCentrality(graph)
	n := graph.NodeCount()

	stats := make([]LocationStat, n)
	for i := 0; i < n; i++ {
		stats[i] = LocationStat{
			Name:  graph.LocationAt(i).Name,
			Score: percent(scores[i]),
		}
		stats[i].Connections, stats[i].AverageDanger = incidentDanger(graph, i)
	}

	// Compare reported (rounded) scores so that ties are exact
	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Score > stats[b].Score
	})

	if topN > n {
		topN = n
	}
	return stats[:topN], nil
}

// incidentDanger counts incoming and outgoing edges of location i and
// averages their danger
func incidentDanger(graph *storage.Graph, i int) (int, float64) {
	count := graph.Degree(i)
	if count == 0 {
		return 0, 0
	}

	total := 0
	for _, e := range graph.Outgoing(i) {
		total += e.Danger
	}
	for _, e := range graph.Incoming(i) {
		total += e.Danger
	}
	return count, round2(float64(total) / float64(count))
}

// GroupRegions partitions the locations into regions with Louvain
// community detection on the danger-weighted undirected route graph.
// Regions are numbered from 1 in order of their earliest location.
func GroupRegions(graph *storage.Graph, resolution float64) ([]CommunityStat, error) {
	regions, _, err := groupRegions(graph, resolution)
	return regions, err
}

func groupRegions(graph *storage.Graph, resolution float64) ([]CommunityStat, float64, error) {
	if !algorithms.ValidResolution(resolution) {
		return nil, 0, &QueryError{Op: QueryRegions, Err: ErrInvalidResolution}
	}

	result, err := algorithms.Louvain(graph, resolution)
	if err != nil {
		return nil, 0, &QueryError{Op: QueryRegions, Err: err}
	}

	degree := algorithms.CommunityDegree(graph, result.NodeCommunity)
	regions := make([]CommunityStat, 0, len(result.Communities))
	for _, c := range result.Communities {
		members := make([]string, len(c.Members))
		for i, u := range c.Members {
			members[i] = graph.LocationAt(u).Name
		}
		sort.Strings(members)

		avg := 0.0
		if c.InternalEdges > 0 {
			avg = round2(float64(c.InternalDanger) / float64(c.InternalEdges))
		}

		regions = append(regions, CommunityStat{
			ID:            c.ID,
			Members:       members,
			Size:          c.Size,
			Connectivity:  percent(c.Density),
			AverageDanger: avg,
			Capital:       capital(graph, members, degree),
		})
	}

	return regions, result.Modularity, nil
}

// capital picks the member with the most routes inside its region. Members
// are in name order, so ties go to the alphabetically first.
func capital(graph *storage.Graph, members []string, degree []int) string {
	best := ""
	bestDegree := -1
	for _, name := range members {
		i, _ := graph.IndexOf(name)
		if degree[i] > bestDegree {
			best = name
			bestDegree = degree[i]
		}
	}
	return best
}

// FindNearby lists the locations within hops routes of origin, nearest
// first. Routes more dangerous than maxDanger are not followed unless
// maxDanger is 0.
func FindNearby(graph *storage.Graph, origin string, hops, maxDanger int) (*NearbyResult, error) {
	source, ok := graph.IndexOf(origin)
	if !ok {
		return nil, &QueryError{Op: QueryNearby, Location: origin, Err: ErrInvalidLocation}
	}
	if hops < 1 || maxDanger < 0 {
		return nil, &QueryError{Op: QueryNearby, Err: ErrInvalidCount}
	}

	khop, err := algorithms.KHopNeighbours(graph, source, algorithms.KHopOptions{
		MaxHops:   hops,
		MaxDanger: maxDanger,
	})
	if err != nil {
		return nil, &QueryError{Op: QueryNearby, Location: origin, Err: err}
	}

	result := &NearbyResult{Origin: origin, Rings: make([]NearbyRing, 0, len(khop.ByHop)), Total: khop.TotalReachable}
	for h, names := range khop.ByHop {
		result.Rings = append(result.Rings, NearbyRing{Hops: h + 1, Locations: names})
	}
	return result, nil
}

// Summarize reports counts, connectivity and the modularity of the regional
// grouping at the given resolution.
func Summarize(graph *storage.Graph, resolution float64) (*GraphSummary, error) {
	stats := graph.GetStatistics()

	summary := &GraphSummary{
		Locations:         stats.LocationCount,
		Routes:            stats.RouteCount,
		KindCounts:        stats.KindCounts,
		Components:        len(algorithms.ConnectedComponents(graph).Communities),
		AverageClustering: round2(algorithms.AverageClusteringCoefficient(graph)),
	}

	for _, r := range graph.Routes() {
		if r.Type.IsDangerous() {
			summary.DangerousRoutes++
		}
	}
	if stats.RouteCount > 0 {
		summary.AverageDanger = round2(float64(stats.TotalDanger) / float64(stats.RouteCount))
	}

	regions, modularity, err := groupRegions(graph, resolution)
	if err != nil {
		return nil, err
	}
	summary.Regions = len(regions)
	summary.Modularity = round2(modularity)

	return summary, nil
}
