// Package visualization draws a route graph as a character map.
package visualization

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// Map is a rendered map. Cells and Labels are keyed by location name.
type Map struct {
	Width     int
	Height    int
	Source    Bounds
	Cells     map[string]Cell
	Labels    map[string]Label
	Unlabeled []string // Locations with no free label position
	Grid      bool
	Legend    []LegendEntry

	locations []storage.Location
	routes    []storage.Route
	onPath    map[routePair]bool
	canvas    *canvas
}

type routePair struct {
	a, b string
}

func newRoutePair(a, b string) routePair {
	if b < a {
		a, b = b, a
	}
	return routePair{a, b}
}

// Render lays out every location of graph on a character canvas, draws its
// routes and places labels. Highlighted path legs without a route are
// ignored.
func Render(graph *storage.Graph, opts MapOptions) (*Map, error) {
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if opts.Width < MinWidth || opts.Height < MinHeight {
		return nil, fmt.Errorf("%w: %dx%d, need at least %dx%d",
			ErrCanvasTooSmall, opts.Width, opts.Height, MinWidth, MinHeight)
	}
	for _, name := range opts.Highlight {
		if !graph.HasLocation(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
		}
	}

	m := &Map{
		Width:     opts.Width,
		Height:    opts.Height,
		Source:    opts.Source,
		Cells:     make(map[string]Cell, graph.NodeCount()),
		Labels:    make(map[string]Label, graph.NodeCount()),
		Grid:      opts.Grid,
		locations: graph.Locations(),
		routes:    graph.Routes(),
		onPath:    make(map[routePair]bool),
		canvas:    newCanvas(opts.Width, opts.Height),
	}
	if m.Source.IsZero() {
		m.Source = fitBounds(m.locations)
	}
	for i := 1; i < len(opts.Highlight); i++ {
		from, to := opts.Highlight[i-1], opts.Highlight[i]
		if _, err := graph.GetEdge(from, to); err != nil {
			continue
		}
		m.onPath[newRoutePair(from, to)] = true
	}

	for _, loc := range m.locations {
		m.Cells[loc.Name] = m.cellOf(loc.Position)
	}

	// Path legs last so they stay visible where routes cross
	for _, r := range m.routes {
		if !m.onPath[newRoutePair(r.From, r.To)] {
			m.canvas.line(m.Cells[r.From], m.Cells[r.To], RouteGlyph(r.Type))
		}
	}
	for _, r := range m.routes {
		if m.onPath[newRoutePair(r.From, r.To)] {
			m.canvas.line(m.Cells[r.From], m.Cells[r.To], PathGlyph)
		}
	}

	for _, loc := range m.locations {
		at := m.Cells[loc.Name]
		m.canvas.place(at.Col, at.Row, Glyph(loc.Kind))
	}
	m.placeLabels()

	if opts.Legend {
		m.Legend = Legend(len(opts.Highlight) > 1)
	}
	return m, nil
}

func (m *Map) colOf(x float64) int {
	p := ScaleCoordinates(storage.Position{X: x}, m.Source, Bounds{Width: float64(m.Width - 1), Height: 1})
	return clamp(int(math.Round(p.X)), 0, m.Width-1)
}

func (m *Map) rowOf(y float64) int {
	p := ScaleCoordinates(storage.Position{Y: y}, m.Source, Bounds{Width: 1, Height: float64(m.Height - 1)})
	return clamp(m.Height-1-int(math.Round(p.Y)), 0, m.Height-1)
}

func (m *Map) cellOf(p storage.Position) Cell {
	return Cell{Col: m.colOf(p.X), Row: m.rowOf(p.Y)}
}

// placeLabels labels locations in dataset order, trying right, left, above
// and below each glyph in turn
func (m *Map) placeLabels() {
	for _, loc := range m.locations {
		text := DisplayName(loc.Name)
		n := len([]rune(text))
		at := m.Cells[loc.Name]

		candidates := []Label{
			{Col: at.Col + 2, Row: at.Row, Placement: PlaceRight},
			{Col: at.Col - 1 - n, Row: at.Row, Placement: PlaceLeft},
			{Col: at.Col - n/2, Row: at.Row - 1, Placement: PlaceAbove},
			{Col: at.Col - n/2, Row: at.Row + 1, Placement: PlaceBelow},
		}

		placed := false
		for _, c := range candidates {
			if m.canvas.fits(c.Col, c.Row, n) {
				c.Text = text
				m.canvas.write(c.Col, c.Row, text)
				m.Labels[loc.Name] = c
				placed = true
				break
			}
		}
		if !placed {
			m.Unlabeled = append(m.Unlabeled, loc.Name)
		}
	}
}

// Lines returns the canvas rows without axes or legend
func (m *Map) Lines() []string {
	return m.canvas.rows()
}

// At returns the character drawn at a canvas cell
func (m *Map) At(c Cell) rune {
	return m.canvas.at(c.Col, c.Row)
}

// String renders the canvas with axes and legend when enabled
func (m *Map) String() string {
	var sb strings.Builder

	if m.Grid {
		m.writeGrid(&sb)
	} else {
		for _, line := range m.Lines() {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}

	if len(m.Legend) > 0 {
		sb.WriteByte('\n')
		sb.WriteString(FormatLegend(m.Legend, 3))
	}
	return sb.String()
}

func (m *Map) writeGrid(sb *strings.Builder) {
	const margin = 5

	yTicks := make(map[int]int)
	for v := 0; float64(v) <= m.Source.Height; v += GridStep {
		row := m.rowOf(float64(v))
		if _, ok := yTicks[row]; !ok {
			yTicks[row] = v
		}
	}

	var xCols []int
	for v := 0; float64(v) <= m.Source.Width; v += GridStep {
		xCols = append(xCols, m.colOf(float64(v)))
	}

	for i, line := range m.Lines() {
		v, tick := yTicks[i]
		if !tick {
			fmt.Fprintf(sb, "    |%s\n", line)
			continue
		}

		// Mark grid intersections on empty cells
		row := []rune(line + strings.Repeat(" ", m.Width-len([]rune(line))))
		for _, col := range xCols {
			if row[col] == ' ' {
				row[col] = '+'
			}
		}
		fmt.Fprintf(sb, "%3d +%s\n", v, strings.TrimRight(string(row), " "))
	}

	axis := []rune("    +" + strings.Repeat("-", m.Width))
	ticks := []rune(strings.Repeat(" ", margin+m.Width+4))
	next := 0
	for i, col := range xCols {
		axis[margin+col] = '+'
		text := strconv.Itoa(i * GridStep)
		start := margin + col - len(text)/2
		if start < next || start+len(text) > len(ticks) {
			continue
		}
		copy(ticks[start:], []rune(text))
		next = start + len(text) + 1
	}
	sb.WriteString(string(axis))
	sb.WriteByte('\n')
	sb.WriteString(strings.TrimRight(string(ticks), " "))
	sb.WriteByte('\n')
}

// ExportJSON exports the map layout with display names, cells and colors
func (m *Map) ExportJSON() ([]byte, error) {
	type LocationViz struct {
		Name    string               `json:"name"`
		Display string               `json:"display"`
		Kind    storage.LocationKind `json:"kind"`
		Glyph   string               `json:"glyph"`
		Color   string               `json:"color"`
		Cell    Cell                 `json:"cell"`
		Label   *Label               `json:"label,omitempty"`
	}

	type RouteViz struct {
		From      string            `json:"from"`
		To        string            `json:"to"`
		Danger    int               `json:"danger"`
		Type      storage.RouteType `json:"type"`
		Dangerous bool              `json:"dangerous"`
		Color     string            `json:"color"`
		OnPath    bool              `json:"onPath"`
	}

	type MapViz struct {
		Width     int           `json:"width"`
		Height    int           `json:"height"`
		Source    Bounds        `json:"source"`
		Locations []LocationViz `json:"locations"`
		Routes    []RouteViz    `json:"routes"`
	}

	data := MapViz{
		Width:     m.Width,
		Height:    m.Height,
		Source:    m.Source,
		Locations: make([]LocationViz, 0, len(m.locations)),
		Routes:    make([]RouteViz, 0, len(m.routes)),
	}

	for _, loc := range m.locations {
		viz := LocationViz{
			Name:    loc.Name,
			Display: DisplayName(loc.Name),
			Kind:    loc.Kind,
			Glyph:   string(Glyph(loc.Kind)),
			Color:   KindColor(loc.Kind),
			Cell:    m.Cells[loc.Name],
		}
		if label, ok := m.Labels[loc.Name]; ok {
			viz.Label = &label
		}
		data.Locations = append(data.Locations, viz)
	}

	for _, r := range m.routes {
		data.Routes = append(data.Routes, RouteViz{
			From:      r.From,
			To:        r.To,
			Danger:    r.Danger,
			Type:      r.Type,
			Dangerous: r.Type.IsDangerous(),
			Color:     RouteColor(r.Type),
			OnPath:    m.onPath[newRoutePair(r.From, r.To)],
		})
	}

	return json.Marshal(data)
}
