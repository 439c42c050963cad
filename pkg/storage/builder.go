package storage

import (
	"fmt"
	"strings"
)

type routeKey struct {
	a, b int
}

func newRouteKey(a, b int) routeKey {
	if a > b {
		a, b = b, a
	}
	return routeKey{a: a, b: b}
}

// Builder accumulates locations and routes and produces an immutable Graph.
// Every record is validated as it is added, so Build only fails if a previous
// Add call was ignored by the caller.
type Builder struct {
	locations []Location
	index     map[string]int
	routes    []Route
	seen      map[routeKey]struct{}
	errs      []error
}

// NewBuilder creates an empty graph builder
func NewBuilder() *Builder {
	return &Builder{
		index: make(map[string]int),
		seen:  make(map[routeKey]struct{}),
	}
}

// AddLocation registers a location. Names must be unique and non-blank.
func (b *Builder) AddLocation(loc Location) error {
	if err := b.checkLocation(loc); err != nil {
		b.errs = append(b.errs, err)
		return err
	}
	b.index[loc.Name] = len(b.locations)
	b.locations = append(b.locations, loc)
	return nil
}

func (b *Builder) checkLocation(loc Location) error {
	if strings.TrimSpace(loc.Name) == "" {
		return NewError("AddLocation").Location(loc.Name).Field("name").Cause(ErrInvalidName).Err()
	}
	if _, exists := b.index[loc.Name]; exists {
		return NewError("AddLocation").Location(loc.Name).Cause(ErrDuplicateLocation).Err()
	}
	if !loc.Kind.Valid() {
		return NewError("AddLocation").Location(loc.Name).Field("kind").
			Context(string(loc.Kind)).Cause(ErrInvalidKind).Err()
	}
	return nil
}

// AddRoute registers an undirected route. Both endpoints must already exist.
func (b *Builder) AddRoute(r Route) error {
	if err := b.checkRoute(r); err != nil {
		b.errs = append(b.errs, err)
		return err
	}
	b.seen[newRouteKey(b.index[r.From], b.index[r.To])] = struct{}{}
	b.routes = append(b.routes, r)
	return nil
}

func (b *Builder) checkRoute(r Route) error {
	fromIdx, ok := b.index[r.From]
	if !ok {
		return NewError("AddRoute").Route(r.From, r.To).Context(r.From).Cause(ErrDanglingRoute).Err()
	}
	toIdx, ok := b.index[r.To]
	if !ok {
		return NewError("AddRoute").Route(r.From, r.To).Context(r.To).Cause(ErrDanglingRoute).Err()
	}
	if fromIdx == toIdx {
		return NewError("AddRoute").Route(r.From, r.To).Cause(ErrSelfLoop).Err()
	}
	if r.Danger < MinDanger || r.Danger > MaxDanger {
		return NewError("AddRoute").Route(r.From, r.To).Field("danger").
			Context(fmt.Sprintf("got %d, want %d..%d", r.Danger, MinDanger, MaxDanger)).
			Cause(ErrInvalidDanger).Err()
	}
	if !r.Type.Valid() {
		return NewError("AddRoute").Route(r.From, r.To).Field("type").
			Context(string(r.Type)).Cause(ErrInvalidRouteType).Err()
	}
	if _, dup := b.seen[newRouteKey(fromIdx, toIdx)]; dup {
		return NewError("AddRoute").Route(r.From, r.To).Cause(ErrDuplicateRoute).Err()
	}
	return nil
}

// Build returns the immutable graph. Each route becomes a pair of directed
// edges with identical danger and type.
func (b *Builder) Build() (*Graph, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("graph has %d invalid records: %w", len(b.errs), b.errs[0])
	}

	n := len(b.locations)
	g := &Graph{
		locations: make([]Location, n),
		index:     make(map[string]int, n),
		outgoing:  make([][]Edge, n),
		incoming:  make([][]Edge, n),
		routes:    make([]Route, len(b.routes)),
	}
	copy(g.locations, b.locations)
	copy(g.routes, b.routes)
	for name, i := range b.index {
		g.index[name] = i
	}

	for _, r := range b.routes {
		forward := Edge{
			From:      r.From,
			To:        r.To,
			FromIndex: b.index[r.From],
			ToIndex:   b.index[r.To],
			Danger:    r.Danger,
			Type:      r.Type,
		}
		backward := forward.Reverse()
		g.addEdge(forward)
		g.addEdge(backward)
	}

	return g, nil
}

func (g *Graph) addEdge(e Edge) {
	g.outgoing[e.FromIndex] = append(g.outgoing[e.FromIndex], e)
	g.incoming[e.ToIndex] = append(g.incoming[e.ToIndex], e)
}
