package visualization

import (
	"fmt"
	"strings"

	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// LegendEntry is one line of the map legend
type LegendEntry struct {
	Glyph rune   `json:"glyph"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend lists every location kind followed by the route styles. The path
// entry is included only when a path is highlighted.
func Legend(withPath bool) []LegendEntry {
	kinds := storage.LocationKinds()
	entries := make([]LegendEntry, 0, len(kinds)+3)
	for _, kind := range kinds {
		entries = append(entries, LegendEntry{
			Glyph: Glyph(kind),
			Label: title(string(kind)),
			Color: KindColor(kind),
		})
	}

	entries = append(entries,
		LegendEntry{Glyph: SafeRouteGlyph, Label: "Safe Path", Color: SafeRouteColor},
		LegendEntry{Glyph: DangerousRouteGlyph, Label: "Dangerous Path", Color: DangerousRouteColor},
	)
	if withPath {
		entries = append(entries, LegendEntry{Glyph: PathGlyph, Label: "Safest Path", Color: PathColor})
	}
	return entries
}

// FormatLegend lays the entries out in columns under a title
func FormatLegend(entries []LegendEntry, columns int) string {
	if columns < 1 {
		columns = 1
	}

	var sb strings.Builder
	sb.WriteString("Map Legend\n")
	for i, e := range entries {
		cell := fmt.Sprintf("%c %-16s", e.Glyph, e.Label)
		if i%columns == columns-1 || i == len(entries)-1 {
			cell = strings.TrimRight(cell, " ") + "\n"
		}
		sb.WriteString(cell)
	}
	return sb.String()
}

func title(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
