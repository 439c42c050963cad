package storage

import "testing"

func TestLocationKind_Valid(t *testing.T) {
	for _, k := range LocationKinds() {
		if !k.Valid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if len(LocationKinds()) != 10 {
		t.Errorf("got %d kinds, want 10", len(LocationKinds()))
	}

	for _, k := range []LocationKind{"", "castle", "Haven"} {
		if k.Valid() {
			t.Errorf("%q should be invalid", k)
		}
	}
}

func TestLocationKinds_ReturnsCopy(t *testing.T) {
	kinds := LocationKinds()
	kinds[0] = "castle"
	if LocationKinds()[0] == "castle" {
		t.Error("LocationKinds exposes its backing slice")
	}
}

func TestRouteType_Valid(t *testing.T) {
	for _, rt := range routeTypes {
		if !rt.Valid() {
			t.Errorf("%s should be valid", rt)
		}
	}
	for _, rt := range []RouteType{"", "river", "Road"} {
		if rt.Valid() {
			t.Errorf("%q should be invalid", rt)
		}
	}
}

func TestEdge_Reverse(t *testing.T) {
	e := Edge{From: "A", To: "B", FromIndex: 0, ToIndex: 1, Danger: 4, Type: RouteForestPath}
	r := e.Reverse()

	want := Edge{From: "B", To: "A", FromIndex: 1, ToIndex: 0, Danger: 4, Type: RouteForestPath}
	if r != want {
		t.Errorf("Reverse() = %+v, want %+v", r, want)
	}
	if r.Reverse() != e {
		t.Error("reversing twice should give the original edge")
	}
}
