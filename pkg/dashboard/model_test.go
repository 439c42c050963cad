package dashboard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/realm-atlas/pkg/analysis"
	"github.com/dd0wney/realm-atlas/pkg/dataset"
	"github.com/dd0wney/realm-atlas/pkg/visualization"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	ds, err := dataset.Load(dataset.DefaultName)
	require.NoError(t, err)
	g, err := ds.Graph()
	require.NoError(t, err)

	m := New(analysis.NewEngine(g), Options{
		Title: ds.Title,
		Map: visualization.MapOptions{
			Source: visualization.Bounds{Width: ds.Extent.Width, Height: ds.Extent.Height},
		},
	})
	return send(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update returned %T", next)
	}
	return m
}

var (
	tabKey      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTabKey = tea.KeyMsg{Type: tea.KeyShiftTab}
	enterKey    = tea.KeyMsg{Type: tea.KeyEnter}
	leftKey     = tea.KeyMsg{Type: tea.KeyLeft}
	rightKey    = tea.KeyMsg{Type: tea.KeyRight}
	upKey       = tea.KeyMsg{Type: tea.KeyUp}
	downKey     = tea.KeyMsg{Type: tea.KeyDown}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func repeat(msg tea.Msg, n int) []tea.Msg {
	out := make([]tea.Msg, n)
	for i := range out {
		out[i] = msg
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, mapTab, m.tab)
	assert.Equal(t, 5, m.topN)
	assert.Equal(t, 1.0, m.resolution)
	assert.Equal(t, "Bree", m.names[m.start])
	assert.Equal(t, "Mount_Doom", m.names[m.end])
	assert.Len(t, m.names, 32)
}

func TestNew_ClampsOptions(t *testing.T) {
	g, err := dataset.BuildGraph()
	require.NoError(t, err)

	m := New(analysis.NewEngine(g), Options{TopN: 50, Resolution: 20})
	assert.Equal(t, MaxTopN, m.topN)
	assert.Equal(t, MaxResolution, m.resolution)
}

func TestUpdate_Tabs(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, tabKey)
	assert.Equal(t, pathTab, m.tab)
	m = send(t, m, tabKey, tabKey, tabKey)
	assert.Equal(t, mapTab, m.tab, "tab wraps around")

	m = send(t, m, shiftTabKey)
	assert.Equal(t, regionsTab, m.tab)
}

func TestUpdate_TopNSlider(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tabKey, tabKey)
	require.Equal(t, strategicTab, m.tab)

	m = send(t, m, rightKey)
	assert.Equal(t, 6, m.topN)

	m = send(t, m, repeat(rightKey, 10)...)
	assert.Equal(t, MaxTopN, m.topN)

	m = send(t, m, repeat(leftKey, 10)...)
	assert.Equal(t, MinTopN, m.topN)
}

func TestUpdate_ResolutionSlider(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, shiftTabKey)
	require.Equal(t, regionsTab, m.tab)

	m = send(t, m, rightKey, rightKey)
	assert.Equal(t, 1.2, m.resolution)

	m = send(t, m, repeat(leftKey, 30)...)
	assert.Equal(t, MinResolution, m.resolution)

	m = send(t, m, repeat(rightKey, 9)...)
	assert.Equal(t, 1.0, m.resolution)
}

func TestUpdate_Strategic(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tabKey, tabKey, enterKey)

	require.True(t, m.ranked)
	rows := m.strategic.Rows()
	require.Len(t, rows, 5)
	assert.Equal(t, "Isengard", rows[0][1])
	assert.Equal(t, "53.55%", rows[0][2])
	assert.False(t, m.messageErr)

	m = send(t, m, leftKey, leftKey, enterKey)
	assert.Len(t, m.strategic.Rows(), 3)
	assert.Contains(t, m.View(), "Helms Deep")
}

func TestUpdate_Regions(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, shiftTabKey, enterKey)

	require.Len(t, m.regions, 4)
	assert.Equal(t, "Found 4 regions at resolution 1.0", m.message)

	view := m.View()
	assert.Contains(t, view, "Capital: Dead Marshes")
	assert.Contains(t, view, "Region 4")
}

func TestUpdate_PathFinder(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tabKey, enterKey)

	require.NotNil(t, m.path)
	assert.Equal(t, 43, m.path.TotalDanger)
	assert.Equal(t, "Safest path found: 10 legs, danger 43", m.message)
	assert.Contains(t, m.View(), "Cirith Ungol → Mount Doom")

	// The highlight carries over to the map tab
	m = send(t, m, shiftTabKey)
	assert.Contains(t, m.View(), "Safest Path")

	// Enter on the map clears it
	m = send(t, m, enterKey)
	assert.Nil(t, m.path)
	assert.NotContains(t, m.View(), "Safest Path")
}

func TestUpdate_PathSelection(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tabKey)

	start := m.start
	m = send(t, m, downKey)
	assert.Equal(t, start+1, m.start)
	assert.False(t, m.editingEnd)

	m = send(t, m, runes("s"))
	assert.True(t, m.editingEnd)
	end := m.end
	m = send(t, m, upKey)
	assert.Equal(t, end-1, m.end)

	m = send(t, m, rightKey)
	assert.False(t, m.editingEnd, "left/right switch the edited field")

	// Selecting wraps around the sorted names
	m.start = 0
	m = send(t, m, upKey)
	assert.Equal(t, len(m.names)-1, m.start)
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestView(t *testing.T) {
	m := New(analysis.NewEngine(newTestModel(t).engine.Graph()), Options{})
	assert.Equal(t, "Initializing...", m.View())

	m = newTestModel(t)
	view := m.View()
	for _, want := range []string{"Map", "Path Finder", "Strategic", "Regions", "Map Legend", "Dangerous Path", "Rivendell"} {
		assert.True(t, strings.Contains(view, want), "view lacks %q", want)
	}

	m = send(t, m, tabKey, tabKey)
	assert.Contains(t, m.View(), "Press enter to analyze strategic points")
}
