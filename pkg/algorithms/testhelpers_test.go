package algorithms

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// route is a compact test route: endpoints and danger
type route struct {
	from, to string
	danger   int
}

// buildTestGraph creates a graph from location names and routes.
// Locations are towns and routes are roads.
func buildTestGraph(t *testing.T, names []string, routes []route) *storage.Graph {
	t.Helper()

	g, err := newGraph(names, routes)
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}
	return g
}

func newGraph(names []string, routes []route) (*storage.Graph, error) {
	b := storage.NewBuilder()
	for _, name := range names {
		if err := b.AddLocation(storage.Location{Name: name, Kind: storage.KindTown}); err != nil {
			return nil, err
		}
	}
	for _, r := range routes {
		if err := b.AddRoute(storage.Route{From: r.from, To: r.to, Danger: r.danger, Type: storage.RouteRoad}); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// randomConnectedGraph builds a connected graph with n locations from seed.
// A random spanning tree guarantees connectivity; extra routes are added
// with probability p.
func randomConnectedGraph(seed int64, n int, p float64) (*storage.Graph, error) {
	rng := rand.New(rand.NewSource(seed))

	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("L%d", i)
	}

	linked := make(map[[2]int]bool)
	routes := make([]route, 0)
	link := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		if a == b || linked[[2]int{a, b}] {
			return
		}
		linked[[2]int{a, b}] = true
		routes = append(routes, route{names[a], names[b], 1 + rng.Intn(10)})
	}

	for i := 1; i < n; i++ {
		link(rng.Intn(i), i)
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if rng.Float64() < p {
				link(a, b)
			}
		}
	}

	return newGraph(names, routes)
}

// indexOf resolves a location name or fails the test
func indexOf(t *testing.T, g *storage.Graph, name string) int {
	t.Helper()
	i, ok := g.IndexOf(name)
	if !ok {
		t.Fatalf("location %q not in graph", name)
	}
	return i
}

func approxEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
