package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dd0wney/realm-atlas/pkg/analysis"
	"github.com/dd0wney/realm-atlas/pkg/dataset"
	"github.com/dd0wney/realm-atlas/pkg/visualization"
)

func newTestConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	ds, err := dataset.Load(dataset.DefaultName)
	if err != nil {
		t.Fatalf("Failed to load dataset: %v", err)
	}
	g, err := ds.Graph()
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}

	var out bytes.Buffer
	c := New(analysis.NewEngine(g), &out, Options{
		Title: ds.Title,
		Map: visualization.MapOptions{
			Source: visualization.Bounds{Width: ds.Extent.Width, Height: ds.Extent.Height},
		},
	})
	return c, &out
}

func run(t *testing.T, c *Console, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	if !c.Execute(line) {
		t.Fatalf("%q stopped the console", line)
	}
	return out.String()
}

func TestConsole_Path(t *testing.T) {
	c, out := newTestConsole(t)

	got := run(t, c, out, "path Bree Mount_Doom")
	for _, want := range []string{
		"Total Danger Score: 43",
		"Complete Path: Bree → Tharbad → Gap of Rohan",
		"Cirith Ungol to Mount Doom: dangerous path, danger 7/10",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}

	if got := run(t, c, out, "path Bree"); !strings.Contains(got, "Usage: path") {
		t.Errorf("missing usage, got %q", got)
	}
	if got := run(t, c, out, "path Bree Gondolin"); !strings.Contains(got, "invalid location") {
		t.Errorf("unknown location output = %q", got)
	}
}

func TestConsole_Strategic(t *testing.T) {
	c, out := newTestConsole(t)

	got := run(t, c, out, "strategic")
	if n := strings.Count(got, "Score:"); n != 5 {
		t.Errorf("default ranking has %d entries, want 5", n)
	}
	if !strings.Contains(got, " 1. Isengard") || !strings.Contains(got, "53.55%") {
		t.Errorf("unexpected ranking:\n%s", got)
	}

	got = run(t, c, out, "strategic 8")
	if n := strings.Count(got, "Score:"); n != 8 {
		t.Errorf("ranking has %d entries, want 8", n)
	}

	if got := run(t, c, out, "strategic many"); !strings.Contains(got, "Invalid count") {
		t.Errorf("bad count output = %q", got)
	}
	if got := run(t, c, out, "strategic 0"); !strings.Contains(got, "invalid count") {
		t.Errorf("zero count output = %q", got)
	}
}

func TestConsole_Regions(t *testing.T) {
	c, out := newTestConsole(t)

	got := run(t, c, out, "regions")
	if n := strings.Count(got, "Region "); n != 4 {
		t.Errorf("got %d regions at default resolution, want 4:\n%s", n, got)
	}
	if !strings.Contains(got, "Region 2 - Capital: Dead Marshes") {
		t.Errorf("missing Mordor capital:\n%s", got)
	}

	if got := run(t, c, out, "regions NaN"); !strings.Contains(got, "invalid resolution") {
		t.Errorf("expected invalid resolution for NaN, got %q", got)
	}
	if got := run(t, c, out, "regions -1"); !strings.Contains(got, "invalid resolution") {
		t.Errorf("negative resolution output = %q", got)
	}
	if got := run(t, c, out, "regions x"); !strings.Contains(got, "Invalid resolution") {
		t.Errorf("bad resolution output = %q", got)
	}
}

func TestConsole_Near(t *testing.T) {
	c, out := newTestConsole(t)

	got := run(t, c, out, "near Bree 1")
	if !strings.Contains(got, "1 hop(s): Weathertop, Shire, Fornost, Tharbad") {
		t.Errorf("unexpected neighbourhood:\n%s", got)
	}
	if !strings.Contains(got, "4 locations") {
		t.Errorf("missing total:\n%s", got)
	}

	got = run(t, c, out, "near Rivendell")
	if !strings.Contains(got, "2 hop(s):") || strings.Contains(got, "3 hop(s):") {
		t.Errorf("default should stop at two hops:\n%s", got)
	}

	if got := run(t, c, out, "near"); !strings.Contains(got, "Usage: near") {
		t.Errorf("missing usage, got %q", got)
	}
	if got := run(t, c, out, "near Bree x"); !strings.Contains(got, "Invalid hop count") {
		t.Errorf("bad hops output = %q", got)
	}
	if got := run(t, c, out, "near Gondolin"); !strings.Contains(got, "invalid location") {
		t.Errorf("unknown location output = %q", got)
	}
}

func TestConsole_Listings(t *testing.T) {
	c, out := newTestConsole(t)

	got := run(t, c, out, "locations")
	if !strings.Contains(got, "32 locations") || !strings.Contains(got, "Mount Doom") {
		t.Errorf("locations output:\n%s", got)
	}

	got = run(t, c, out, "locations fortress")
	if !strings.Contains(got, "6 locations") {
		t.Errorf("fortress listing:\n%s", got)
	}
	if got := run(t, c, out, "locations volcano"); !strings.Contains(got, "Unknown kind") {
		t.Errorf("unknown kind output = %q", got)
	}

	if got := run(t, c, out, "routes"); !strings.Contains(got, "38 routes") {
		t.Errorf("routes output:\n%s", got)
	}
	got = run(t, c, out, "routes Bree")
	if !strings.Contains(got, "4 routes") || !strings.Contains(got, "Bree ─ Weathertop") {
		t.Errorf("routes from Bree:\n%s", got)
	}
	if got := run(t, c, out, "routes Gondolin"); !strings.Contains(got, "not found") {
		t.Errorf("unknown location routes = %q", got)
	}
}

func TestConsole_Stats(t *testing.T) {
	c, out := newTestConsole(t)

	got := run(t, c, out, "stats")
	for _, want := range []string{"Locations:          32", "Routes:             38", "Components:         1", "Regions:            4"} {
		if !strings.Contains(got, want) {
			t.Errorf("stats lacks %q:\n%s", want, got)
		}
	}
}

func TestConsole_Map(t *testing.T) {
	c, out := newTestConsole(t)

	got := run(t, c, out, "map")
	if strings.ContainsRune(got, visualization.PathGlyph) {
		t.Error("plain map contains path glyph")
	}

	got = run(t, c, out, "map Shire Rivendell")
	if !strings.ContainsRune(got, visualization.PathGlyph) {
		t.Errorf("highlighted map lacks path glyph:\n%s", got)
	}

	if got := run(t, c, out, "map Shire"); !strings.Contains(got, "Usage: map") {
		t.Errorf("map usage output = %q", got)
	}
}

func TestConsole_UnknownAndHelp(t *testing.T) {
	c, out := newTestConsole(t)

	if got := run(t, c, out, "teleport Shire"); !strings.Contains(got, "Unknown command: teleport") {
		t.Errorf("unknown command output = %q", got)
	}
	if got := run(t, c, out, "HELP"); !strings.Contains(got, "path <from> <to>") {
		t.Errorf("help output = %q", got)
	}
	if c.Execute("exit") {
		t.Error("exit should stop the console")
	}
}

func TestConsole_Run(t *testing.T) {
	c, out := newTestConsole(t)

	in := strings.NewReader("\nstrategic 3\nquit\nstats\n")
	if err := c.Run(in); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := out.String()
	if strings.Count(got, "realm> ") != 3 {
		t.Errorf("expected 3 prompts:\n%s", got)
	}
	if !strings.Contains(got, "Safe travels!") {
		t.Error("missing farewell")
	}
	if strings.Contains(got, "Locations:") {
		t.Error("commands after quit were executed")
	}
}

func TestConsole_RunEOF(t *testing.T) {
	c, out := newTestConsole(t)

	if err := c.Run(strings.NewReader("path Shire Bree")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Complete Path: Shire → Bree") {
		t.Errorf("output:\n%s", out.String())
	}
}
