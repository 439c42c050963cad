package storage

import (
	"testing"
)

// testGraph builds a graph from compact location and route lists.
// Every location is a town at the origin unless positions matter.
func testGraph(t *testing.T, names []string, routes []Route) *Graph {
	t.Helper()

	b := NewBuilder()
	for _, name := range names {
		if err := b.AddLocation(Location{Name: name, Kind: KindTown}); err != nil {
			t.Fatalf("AddLocation(%q) failed: %v", name, err)
		}
	}
	for _, r := range routes {
		if r.Type == "" {
			r.Type = RouteRoad
		}
		if err := b.AddRoute(r); err != nil {
			t.Fatalf("AddRoute(%s->%s) failed: %v", r.From, r.To, err)
		}
	}

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}
