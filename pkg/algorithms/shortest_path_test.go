package algorithms

import (
	"errors"
	"testing"
)

func TestSafestPath_PrefersLowerDanger(t *testing.T) {
	// Direct A-C is shorter in hops but more dangerous than A-B-C
	g := buildTestGraph(t, []string{"A", "B", "C"}, []route{
		{"A", "B", 1},
		{"B", "C", 1},
		{"A", "C", 5},
	})

	path, err := SafestPath(g, indexOf(t, g, "A"), indexOf(t, g, "C"))
	if err != nil {
		t.Fatalf("SafestPath failed: %v", err)
	}

	want := []string{"A", "B", "C"}
	if len(path.Locations) != len(want) {
		t.Fatalf("path = %v, want %v", path.Locations, want)
	}
	for i := range want {
		if path.Locations[i] != want[i] {
			t.Fatalf("path = %v, want %v", path.Locations, want)
		}
	}
	if path.TotalDanger != 2 {
		t.Errorf("TotalDanger = %d, want 2", path.TotalDanger)
	}
	if len(path.Steps) != 2 || path.Steps[0].From != "A" || path.Steps[1].To != "C" {
		t.Errorf("unexpected steps: %+v", path.Steps)
	}
}

func TestSafestPath_SameLocation(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B"}, []route{{"A", "B", 3}})

	path, err := SafestPath(g, 0, 0)
	if err != nil {
		t.Fatalf("SafestPath failed: %v", err)
	}
	if len(path.Locations) != 1 || path.Locations[0] != "A" {
		t.Errorf("Locations = %v, want [A]", path.Locations)
	}
	if path.TotalDanger != 0 || len(path.Steps) != 0 {
		t.Errorf("expected empty zero-danger path, got %+v", path)
	}
}

func TestSafestPath_Disconnected(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B", "C", "D"}, []route{
		{"A", "B", 1},
		{"C", "D", 1},
	})

	_, err := SafestPath(g, indexOf(t, g, "A"), indexOf(t, g, "D"))
	if !errors.Is(err, ErrNoPath) {
		t.Errorf("error = %v, want ErrNoPath", err)
	}
}

func TestSafestPath_TieKeepsFirstDiscovered(t *testing.T) {
	// A-B-D and A-C-D both cost 2. B is settled before C (lower index),
	// so D's predecessor is B and is not replaced by the equal path via C.
	g := buildTestGraph(t, []string{"A", "B", "C", "D"}, []route{
		{"A", "B", 1},
		{"A", "C", 1},
		{"B", "D", 1},
		{"C", "D", 1},
	})

	for i := 0; i < 5; i++ {
		path, err := SafestPath(g, 0, 3)
		if err != nil {
			t.Fatalf("SafestPath failed: %v", err)
		}
		if path.Locations[1] != "B" {
			t.Fatalf("run %d: path = %v, want via B", i, path.Locations)
		}
	}
}

func TestSafestPath_StepsSumToTotal(t *testing.T) {
	g, err := randomConnectedGraph(7, 12, 0.3)
	if err != nil {
		t.Fatalf("randomConnectedGraph failed: %v", err)
	}

	for end := 1; end < g.NodeCount(); end++ {
		path, err := SafestPath(g, 0, end)
		if err != nil {
			t.Fatalf("SafestPath(0,%d) failed: %v", end, err)
		}
		sum := 0
		for i, step := range path.Steps {
			if step.From != path.Locations[i] || step.To != path.Locations[i+1] {
				t.Errorf("step %d %+v does not match locations %v", i, step, path.Locations)
			}
			edge, err := g.GetEdge(step.From, step.To)
			if err != nil || edge.Danger != step.Danger {
				t.Errorf("step %d is not a real route: %+v (%v)", i, step, err)
			}
			sum += step.Danger
		}
		if sum != path.TotalDanger {
			t.Errorf("steps sum to %d, TotalDanger = %d", sum, path.TotalDanger)
		}
	}
}
