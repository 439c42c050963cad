package storage

// LocationKind classifies a location on the map
type LocationKind string

const (
	KindHaven    LocationKind = "haven"
	KindTown     LocationKind = "town"
	KindRuin     LocationKind = "ruin"
	KindForest   LocationKind = "forest"
	KindMountain LocationKind = "mountain"
	KindCity     LocationKind = "city"
	KindFortress LocationKind = "fortress"
	KindGate     LocationKind = "gate"
	KindHazard   LocationKind = "hazard"
	KindPass     LocationKind = "pass"
)

var locationKinds = []LocationKind{
	KindCity, KindHaven, KindFortress, KindMountain, KindForest,
	KindRuin, KindTown, KindGate, KindHazard, KindPass,
}

// LocationKinds returns every known location kind in legend order
func LocationKinds() []LocationKind {
	out := make([]LocationKind, len(locationKinds))
	copy(out, locationKinds)
	return out
}

// Valid reports whether k is one of the known kinds
func (k LocationKind) Valid() bool {
	for _, known := range locationKinds {
		if k == known {
			return true
		}
	}
	return false
}

// RouteType classifies the terrain a route crosses
type RouteType string

const (
	RouteRoad          RouteType = "road"
	RouteMountainPass  RouteType = "mountain_pass"
	RouteForestPath    RouteType = "forest_path"
	RouteHazardousPath RouteType = "hazardous_path"
	RouteDangerousPath RouteType = "dangerous_path"
)

var routeTypes = []RouteType{
	RouteRoad, RouteMountainPass, RouteForestPath, RouteHazardousPath, RouteDangerousPath,
}

// Valid reports whether t is one of the known route types
func (t RouteType) Valid() bool {
	for _, known := range routeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsDangerous reports whether the route is drawn as a dangerous path
func (t RouteType) IsDangerous() bool {
	return t == RouteHazardousPath || t == RouteDangerousPath
}

// Danger weight bounds (1 = safest)
const (
	MinDanger = 1
	MaxDanger = 10
)

// Position is a display coordinate. It is never used by the analysis.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Location represents a vertex in the graph
type Location struct {
	Name     string       `json:"name"`
	Position Position     `json:"position"`
	Kind     LocationKind `json:"kind"`
}

// Route is an authored, undirected connection between two locations.
// The graph realizes it as two directed edges with identical attributes.
type Route struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	Danger int       `json:"danger"`
	Type   RouteType `json:"type"`
}

// Edge is one direction of a route
type Edge struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	FromIndex int       `json:"-"`
	ToIndex   int       `json:"-"`
	Danger    int       `json:"danger"`
	Type      RouteType `json:"type"`
}

// Reverse returns the opposite direction of the edge
func (e Edge) Reverse() Edge {
	return Edge{
		From:      e.To,
		To:        e.From,
		FromIndex: e.ToIndex,
		ToIndex:   e.FromIndex,
		Danger:    e.Danger,
		Type:      e.Type,
	}
}

// Statistics summarises a built graph
type Statistics struct {
	LocationCount int
	RouteCount    int
	EdgeCount     int
	KindCounts    map[LocationKind]int
	TotalDanger   int
}
