package graphql

import (
	"context"
	"strings"
	"testing"

	"github.com/dd0wney/realm-atlas/pkg/analysis"
	"github.com/dd0wney/realm-atlas/pkg/dataset"
	"github.com/graphql-go/graphql"
)

func setupSchema(t *testing.T) graphql.Schema {
	t.Helper()
	g, err := dataset.BuildGraph()
	if err != nil {
		t.Fatalf("BuildGraph() error = %v", err)
	}
	schema, err := NewSchema(analysis.NewEngine(g))
	if err != nil {
		t.Fatalf("NewSchema() error = %v", err)
	}
	return schema
}

func run(t *testing.T, schema graphql.Schema, query string) map[string]any {
	t.Helper()
	result := ExecuteQuery(context.Background(), schema, query, nil)
	if result.HasErrors() {
		t.Fatalf("Query execution failed: %v", result.Errors)
	}
	data, ok := result.Data.(map[string]any)
	if !ok {
		t.Fatalf("Data is %T, want map", result.Data)
	}
	return data
}

func TestSchema_Health(t *testing.T) {
	data := run(t, setupSchema(t), `{ health }`)
	if data["health"] != "ok" {
		t.Errorf("health = %v, want ok", data["health"])
	}
}

func TestSchema_Locations(t *testing.T) {
	schema := setupSchema(t)

	data := run(t, schema, `{ locations { name kind position { x y } } }`)
	locations := data["locations"].([]any)
	if len(locations) != 32 {
		t.Fatalf("Expected 32 locations, got %d", len(locations))
	}
	first := locations[0].(map[string]any)
	if first["name"] != "Shire" || first["kind"] != "haven" {
		t.Errorf("first location = %v, want Shire haven", first)
	}
	pos := first["position"].(map[string]any)
	if pos["x"] != 25.0 || pos["y"] != 52.0 {
		t.Errorf("Shire position = %v, want (25, 52)", pos)
	}

	data = run(t, schema, `{ locations(kind: "fortress") { name kind } }`)
	fortresses := data["locations"].([]any)
	if len(fortresses) != 6 {
		t.Errorf("Expected 6 fortresses, got %d", len(fortresses))
	}
	for _, f := range fortresses {
		if kind := f.(map[string]any)["kind"]; kind != "fortress" {
			t.Errorf("kind filter returned %v", kind)
		}
	}
}

func TestSchema_LocationsUnknownKind(t *testing.T) {
	result := ExecuteQuery(context.Background(), setupSchema(t), `{ locations(kind: "castle") { name } }`, nil)
	if !result.HasErrors() {
		t.Fatal("Expected error for unknown kind")
	}
	if !strings.Contains(result.Errors[0].Message, "castle") {
		t.Errorf("error = %q, want it to name the kind", result.Errors[0].Message)
	}
}

func TestSchema_Location(t *testing.T) {
	schema := setupSchema(t)

	data := run(t, schema, `{ location(name: "Bree") { name kind routes { from to danger type dangerous } } }`)
	bree := data["location"].(map[string]any)
	if bree["kind"] != "town" {
		t.Errorf("Bree kind = %v, want town", bree["kind"])
	}
	routes := bree["routes"].([]any)
	if len(routes) != 4 {
		t.Fatalf("Expected 4 routes from Bree, got %d", len(routes))
	}
	for _, r := range routes {
		route := r.(map[string]any)
		if route["from"] != "Bree" {
			t.Errorf("route leaves %v, want Bree", route["from"])
		}
		danger := route["danger"].(int)
		if danger < 1 || danger > 10 {
			t.Errorf("danger %d out of range", danger)
		}
	}

	data = run(t, schema, `{ location(name: "Hogwarts") { name } }`)
	if data["location"] != nil {
		t.Errorf("unknown location = %v, want null", data["location"])
	}
}

func TestSchema_Routes(t *testing.T) {
	schema := setupSchema(t)

	data := run(t, schema, `{ routes { from to } }`)
	if n := len(data["routes"].([]any)); n != 38 {
		t.Errorf("Expected 38 routes, got %d", n)
	}

	data = run(t, schema, `{ routes(from: "Bree") { to } }`)
	if n := len(data["routes"].([]any)); n != 4 {
		t.Errorf("Expected 4 routes from Bree, got %d", n)
	}

	data = run(t, schema, `{ routes(from: "Cirith_Ungol") { to type dangerous } }`)
	found := false
	for _, r := range data["routes"].([]any) {
		route := r.(map[string]any)
		if route["to"] == "Mount_Doom" {
			found = true
			if route["type"] != "dangerous_path" || route["dangerous"] != true {
				t.Errorf("Cirith_Ungol -> Mount_Doom = %v, want dangerous_path", route)
			}
		}
	}
	if !found {
		t.Error("Cirith_Ungol has no route to Mount_Doom")
	}
}

func TestSchema_SafestPath(t *testing.T) {
	data := run(t, setupSchema(t), `{
		safestPath(start: "Bree", end: "Mount_Doom") {
			path
			totalDanger
			steps { from to danger routeType }
		}
	}`)

	path := data["safestPath"].(map[string]any)
	if path["totalDanger"] != 43 {
		t.Errorf("totalDanger = %v, want 43", path["totalDanger"])
	}
	names := path["path"].([]any)
	if names[0] != "Bree" || names[len(names)-1] != "Mount_Doom" {
		t.Errorf("path = %v, want Bree..Mount_Doom", names)
	}
	steps := path["steps"].([]any)
	if len(steps) != 10 {
		t.Fatalf("Expected 10 steps, got %d", len(steps))
	}
	last := steps[9].(map[string]any)
	if last["from"] != "Cirith_Ungol" || last["danger"] != 7 || last["routeType"] != "dangerous_path" {
		t.Errorf("last step = %v", last)
	}
}

func TestSchema_SafestPathErrors(t *testing.T) {
	schema := setupSchema(t)

	result := ExecuteQuery(context.Background(), schema, `{ safestPath(start: "Bree", end: "Hogwarts") { totalDanger } }`, nil)
	if !result.HasErrors() {
		t.Fatal("Expected error for unknown location")
	}
	if msg := result.Errors[0].Message; !strings.Contains(msg, "invalid location") || !strings.Contains(msg, "Hogwarts") {
		t.Errorf("error = %q", msg)
	}

	// Arguments are required
	result = ExecuteQuery(context.Background(), schema, `{ safestPath(start: "Bree") { totalDanger } }`, nil)
	if !result.HasErrors() {
		t.Error("Expected error for missing end argument")
	}
}

func TestSchema_SafestPathVariables(t *testing.T) {
	query := `query Journey($from: String!, $to: String!) {
		safestPath(start: $from, end: $to) { totalDanger }
	}`
	result := ExecuteQuery(context.Background(), setupSchema(t), query, map[string]any{
		"from": "Mount_Doom",
		"to":   "Bree",
	})
	if result.HasErrors() {
		t.Fatalf("Query execution failed: %v", result.Errors)
	}
	path := result.Data.(map[string]any)["safestPath"].(map[string]any)
	if path["totalDanger"] != 43 {
		t.Errorf("reverse totalDanger = %v, want 43", path["totalDanger"])
	}
}

func TestSchema_StrategicLocations(t *testing.T) {
	schema := setupSchema(t)

	data := run(t, schema, `{ strategicLocations { name score connections averageDanger } }`)
	ranked := data["strategicLocations"].([]any)
	if len(ranked) != DefaultTop {
		t.Fatalf("Expected %d locations by default, got %d", DefaultTop, len(ranked))
	}
	top := ranked[0].(map[string]any)
	if top["name"] != "Isengard" || top["score"] != 53.55 || top["connections"] != 6 {
		t.Errorf("top location = %v, want Isengard 53.55 with 6 connections", top)
	}

	data = run(t, schema, `{ strategicLocations(top: 2) { name } }`)
	if n := len(data["strategicLocations"].([]any)); n != 2 {
		t.Errorf("Expected 2 locations, got %d", n)
	}

	result := ExecuteQuery(context.Background(), schema, `{ strategicLocations(top: 0) { name } }`, nil)
	if !result.HasErrors() {
		t.Error("Expected error for top: 0")
	}
}

func TestSchema_Regions(t *testing.T) {
	schema := setupSchema(t)

	data := run(t, schema, `{ regions { id capital size members connectivity averageDanger } }`)
	regions := data["regions"].([]any)
	if len(regions) != 4 {
		t.Fatalf("Expected 4 regions, got %d", len(regions))
	}
	wantCapitals := []string{"Bree", "Dead_Marshes", "Dale", "Edoras"}
	total := 0
	for i, r := range regions {
		region := r.(map[string]any)
		if region["id"] != i+1 {
			t.Errorf("region %d id = %v", i, region["id"])
		}
		if region["capital"] != wantCapitals[i] {
			t.Errorf("region %d capital = %v, want %s", i+1, region["capital"], wantCapitals[i])
		}
		total += region["size"].(int)
	}
	if total != 32 {
		t.Errorf("regions cover %d locations, want 32", total)
	}

	result := ExecuteQuery(context.Background(), schema, `{ regions(resolution: -1.0) { id } }`, nil)
	if !result.HasErrors() {
		t.Error("Expected error for negative resolution")
	}
}

func TestSchema_Summary(t *testing.T) {
	data := run(t, setupSchema(t), `{ summary { locations routes dangerousRoutes components regions modularity } }`)
	summary := data["summary"].(map[string]any)

	want := map[string]any{
		"locations":       32,
		"routes":          38,
		"dangerousRoutes": 10,
		"components":      1,
		"regions":         4,
		"modularity":      0.6,
	}
	for k, v := range want {
		if summary[k] != v {
			t.Errorf("summary.%s = %v, want %v", k, summary[k], v)
		}
	}
}

func TestSchema_Nearby(t *testing.T) {
	schema := setupSchema(t)

	data := run(t, schema, `{ nearby(name: "Bree", hops: 1) { origin total rings { hops locations } } }`)
	nearby := data["nearby"].(map[string]any)
	if nearby["origin"] != "Bree" || nearby["total"] != 4 {
		t.Errorf("nearby = %v", nearby)
	}
	rings := nearby["rings"].([]any)
	if len(rings) != 1 {
		t.Fatalf("rings = %v, want one", rings)
	}
	first := rings[0].(map[string]any)
	if first["hops"] != 1 || len(first["locations"].([]any)) != 4 {
		t.Errorf("ring = %v", first)
	}

	data = run(t, schema, `{ nearby(name: "Bree", maxDanger: 2) { total } }`)
	if total := data["nearby"].(map[string]any)["total"]; total != 2 {
		t.Errorf("safe total = %v, want 2", total)
	}

	result := ExecuteQuery(context.Background(), schema, `{ nearby(name: "Gondolin") { total } }`, nil)
	if !result.HasErrors() {
		t.Error("expected error for unknown location")
	}
}
