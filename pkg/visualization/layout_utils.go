package visualization

import (
	"math"
	"strings"

	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// ScaleCoordinates maps a position from one coordinate space to another by
// cross multiplication
func ScaleCoordinates(p storage.Position, from, to Bounds) storage.Position {
	return storage.Position{
		X: p.X / from.Width * to.Width,
		Y: p.Y / from.Height * to.Height,
	}
}

// ScaleLocations returns copies of locations with scaled positions
func ScaleLocations(locations []storage.Location, from, to Bounds) []storage.Location {
	scaled := make([]storage.Location, len(locations))
	for i, loc := range locations {
		scaled[i] = loc
		scaled[i].Position = ScaleCoordinates(loc.Position, from, to)
	}
	return scaled
}

// DisplayName turns an identifier such as Mount_Doom into "Mount Doom"
func DisplayName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// fitBounds returns the smallest origin-anchored bounds containing every
// position
func fitBounds(locations []storage.Location) Bounds {
	b := Bounds{Width: 1, Height: 1}
	for _, loc := range locations {
		b.Width = math.Max(b.Width, loc.Position.X)
		b.Height = math.Max(b.Height, loc.Position.Y)
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
