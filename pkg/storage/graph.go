package storage

// Graph is an immutable weighted directed graph of locations and routes.
//
// A Graph is produced by Builder.Build and exposes no mutators, so it is safe
// for concurrent readers without locking. Locations keep their insertion
// order, and each location's adjacency lists keep route insertion order; the
// algorithms rely on both for deterministic results.
type Graph struct {
	locations []Location
	index     map[string]int
	outgoing  [][]Edge
	incoming  [][]Edge
	routes    []Route
}

// NodeCount returns the number of locations
func (g *Graph) NodeCount() int {
	return len(g.locations)
}

// EdgeCount returns the number of directed edges (two per route)
func (g *Graph) EdgeCount() int {
	return 2 * len(g.routes)
}

// RouteCount returns the number of authored routes
func (g *Graph) RouteCount() int {
	return len(g.routes)
}

// Locations returns a copy of all locations in insertion order
func (g *Graph) Locations() []Location {
	out := make([]Location, len(g.locations))
	copy(out, g.locations)
	return out
}

// LocationNames returns all location names in insertion order
func (g *Graph) LocationNames() []string {
	names := make([]string, len(g.locations))
	for i, loc := range g.locations {
		names[i] = loc.Name
	}
	return names
}

// Routes returns a copy of the authored routes in insertion order
func (g *Graph) Routes() []Route {
	out := make([]Route, len(g.routes))
	copy(out, g.routes)
	return out
}

// HasLocation reports whether a location with the given name exists
func (g *Graph) HasLocation(name string) bool {
	_, ok := g.index[name]
	return ok
}

// IndexOf returns the insertion index of a location
func (g *Graph) IndexOf(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// LocationAt returns the location at an insertion index
func (g *Graph) LocationAt(i int) Location {
	return g.locations[i]
}

// GetLocation looks up a location by name
func (g *Graph) GetLocation(name string) (Location, error) {
	i, ok := g.index[name]
	if !ok {
		return Location{}, LocationNotFoundError(name)
	}
	return g.locations[i], nil
}

// Outgoing returns the outgoing edges of the location at index i.
// The returned slice is shared and must not be modified.
func (g *Graph) Outgoing(i int) []Edge {
	return g.outgoing[i]
}

// Incoming returns the incoming edges of the location at index i.
// The returned slice is shared and must not be modified.
func (g *Graph) Incoming(i int) []Edge {
	return g.incoming[i]
}

// GetOutgoingEdges returns a copy of the edges leaving a location
func (g *Graph) GetOutgoingEdges(name string) ([]Edge, error) {
	i, ok := g.index[name]
	if !ok {
		return nil, LocationNotFoundError(name)
	}
	out := make([]Edge, len(g.outgoing[i]))
	copy(out, g.outgoing[i])
	return out, nil
}

// GetEdge returns the directed edge from -> to
func (g *Graph) GetEdge(from, to string) (Edge, error) {
	i, ok := g.index[from]
	if !ok {
		return Edge{}, LocationNotFoundError(from)
	}
	if _, ok := g.index[to]; !ok {
		return Edge{}, LocationNotFoundError(to)
	}
	for _, e := range g.outgoing[i] {
		if e.To == to {
			return e, nil
		}
	}
	return Edge{}, RouteNotFoundError(from, to)
}

// Degree returns the total number of incident directed edges (in + out)
func (g *Graph) Degree(i int) int {
	return len(g.outgoing[i]) + len(g.incoming[i])
}

// GetStatistics returns summary counts for the graph
func (g *Graph) GetStatistics() Statistics {
	stats := Statistics{
		LocationCount: len(g.locations),
		RouteCount:    len(g.routes),
		EdgeCount:     2 * len(g.routes),
		KindCounts:    make(map[LocationKind]int),
	}
	for _, loc := range g.locations {
		stats.KindCounts[loc.Kind]++
	}
	for _, r := range g.routes {
		stats.TotalDanger += r.Danger
	}
	return stats
}
