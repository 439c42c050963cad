package visualization

import (
	"errors"

	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// Canvas defaults, in characters
const (
	DefaultWidth  = 80
	DefaultHeight = 30

	MinWidth  = 10
	MinHeight = 5

	// GridStep is the spacing of axis ticks in source coordinates
	GridStep = 10
)

var (
	// ErrCanvasTooSmall means the requested canvas cannot hold a map
	ErrCanvasTooSmall = errors.New("canvas too small")

	// ErrUnknownLocation means a highlighted location is not in the graph
	ErrUnknownLocation = errors.New("unknown location")
)

// Bounds is the size of a coordinate space whose origin is the lower-left
// corner
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero reports whether the bounds are unset
func (b Bounds) IsZero() bool {
	return b.Width <= 0 || b.Height <= 0
}

// MapOptions configures Render
type MapOptions struct {
	Width     int      // Canvas columns, excluding axes
	Height    int      // Canvas rows, excluding axes and legend
	Source    Bounds   // Coordinate space of the positions; zero fits the data
	Highlight []string // Locations of a path to draw over the routes
	Grid      bool     // Draw axes with ticks every GridStep units
	Legend    bool     // Append the kind and route legend
}

// Cell is a character position on the canvas. Row 0 is the top.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Placement says where a label sits relative to its location
type Placement int

const (
	PlaceRight Placement = iota
	PlaceLeft
	PlaceAbove
	PlaceBelow
)

func (p Placement) String() string {
	switch p {
	case PlaceRight:
		return "right"
	case PlaceLeft:
		return "left"
	case PlaceAbove:
		return "above"
	case PlaceBelow:
		return "below"
	default:
		return "unknown"
	}
}

// Label is a placed location name
type Label struct {
	Text      string    `json:"text"`
	Col       int       `json:"col"`
	Row       int       `json:"row"`
	Placement Placement `json:"-"`
}

// Route glyphs
const (
	SafeRouteGlyph      = '.'
	DangerousRouteGlyph = '~'
	PathGlyph           = '*'
)

var kindGlyphs = map[storage.LocationKind]rune{
	storage.KindCity:     'C',
	storage.KindHaven:    'H',
	storage.KindFortress: 'F',
	storage.KindMountain: 'M',
	storage.KindForest:   'T',
	storage.KindRuin:     'R',
	storage.KindTown:     'o',
	storage.KindGate:     'G',
	storage.KindHazard:   'X',
	storage.KindPass:     'P',
}

// Glyph returns the map symbol for a location kind
func Glyph(kind storage.LocationKind) rune {
	if g, ok := kindGlyphs[kind]; ok {
		return g
	}
	return '?'
}

// Display colors
var kindColors = map[storage.LocationKind]string{
	storage.KindCity:     "#ffd700",
	storage.KindHaven:    "#90EE90",
	storage.KindFortress: "#8B0000",
	storage.KindMountain: "#4a4a4a",
	storage.KindForest:   "#228B22",
	storage.KindRuin:     "#8B4513",
	storage.KindTown:     "#FFA500",
	storage.KindGate:     "#000000",
	storage.KindHazard:   "#800080",
	storage.KindPass:     "#A9A9A9",
}

const (
	SafeRouteColor      = "#463E3F"
	DangerousRouteColor = "#FF0000"
	PathColor           = "#1E90FF"
)

// KindColor returns the hex color of a location kind
func KindColor(kind storage.LocationKind) string {
	return kindColors[kind]
}

// RouteColor returns the hex color of a route type
func RouteColor(t storage.RouteType) string {
	if t.IsDangerous() {
		return DangerousRouteColor
	}
	return SafeRouteColor
}

// RouteGlyph returns the character used to draw a route type
func RouteGlyph(t storage.RouteType) rune {
	if t.IsDangerous() {
		return DangerousRouteGlyph
	}
	return SafeRouteGlyph
}
