package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/realm-atlas/pkg/storage"
	"github.com/dd0wney/realm-atlas/pkg/visualization"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("🧭 " + m.opts.Title))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.tab {
	case mapTab:
		s.WriteString(m.renderMap())
	case pathTab:
		s.WriteString(m.renderPath())
	case strategicTab:
		s.WriteString(m.renderStrategic())
	case regionsTab:
		s.WriteString(m.renderRegions())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m Model) renderTabs() string {
	rendered := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderMap() string {
	opts := m.opts.Map
	opts.Grid = false
	opts.Legend = false
	if m.path != nil {
		opts.Highlight = m.path.Path
	}

	rendered, err := visualization.Render(m.engine.Graph(), opts)
	if err != nil {
		return contentStyle.Render(errorStyle.Render(err.Error()))
	}

	var s strings.Builder
	s.WriteString(mapBoxStyle.Render(m.colorize(rendered)))
	s.WriteString("\n\n")
	s.WriteString(renderLegend(visualization.Legend(m.path != nil), 4))
	return contentStyle.Render(s.String())
}

// colorize paints location glyphs by kind and routes by danger
func (m Model) colorize(rendered *visualization.Map) string {
	graph := m.engine.Graph()
	kinds := make(map[visualization.Cell]storage.LocationKind, len(rendered.Cells))
	for name, cell := range rendered.Cells {
		if loc, err := graph.GetLocation(name); err == nil {
			kinds[cell] = loc.Kind
		}
	}

	lines := rendered.Lines()
	out := make([]string, len(lines))
	for row, line := range lines {
		var sb strings.Builder
		for col, ch := range []rune(line) {
			kind, isLocation := kinds[visualization.Cell{Col: col, Row: row}]
			switch {
			case isLocation && ch == visualization.Glyph(kind):
				sb.WriteString(swatch(visualization.KindColor(kind), string(ch)))
			case ch == visualization.PathGlyph:
				sb.WriteString(swatch(visualization.PathColor, string(ch)))
			case ch == visualization.DangerousRouteGlyph:
				sb.WriteString(swatch(visualization.DangerousRouteColor, string(ch)))
			case ch == visualization.SafeRouteGlyph:
				sb.WriteString(swatch(visualization.SafeRouteColor, string(ch)))
			default:
				sb.WriteRune(ch)
			}
		}
		out[row] = sb.String()
	}
	return strings.Join(out, "\n")
}

func renderLegend(entries []visualization.LegendEntry, columns int) string {
	var s strings.Builder
	s.WriteString(selectedStyle.Render("Map Legend"))
	s.WriteByte('\n')
	for i, e := range entries {
		s.WriteString(swatch(e.Color, string(e.Glyph)))
		s.WriteString(fmt.Sprintf(" %-16s", e.Label))
		if i%columns == columns-1 {
			s.WriteByte('\n')
		}
	}
	return s.String()
}

func (m Model) renderPath() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Path Finder"))
	s.WriteString("\n\n")

	if len(m.names) == 0 {
		s.WriteString(dimStyle.Render("No locations loaded"))
		return contentStyle.Render(s.String())
	}

	s.WriteString(m.selector("Start", m.names[m.start], !m.editingEnd))
	s.WriteByte('\n')
	s.WriteString(m.selector("End  ", m.names[m.end], m.editingEnd))
	s.WriteString("\n\n")

	if m.path != nil {
		var details strings.Builder
		fmt.Fprintf(&details, "🚶 Total Danger Score: %d\n\n", m.path.TotalDanger)
		for i, step := range m.path.Steps {
			fmt.Fprintf(&details, "%2d. %s → %s  %s, danger %d/10\n", i+1,
				visualization.DisplayName(step.From),
				visualization.DisplayName(step.To),
				strings.ReplaceAll(string(step.RouteType), "_", " "),
				step.Danger)
		}
		s.WriteString(boxStyle.Render(strings.TrimRight(details.String(), "\n")))
		s.WriteString("\n\n")
	}

	s.WriteString(dimStyle.Render("↑/↓ choose location • ←/→ or s switch start/end • enter find path"))
	return contentStyle.Render(s.String())
}

func (m Model) selector(label, name string, active bool) string {
	text := fmt.Sprintf("%s: %s", label, visualization.DisplayName(name))
	if active {
		return selectedStyle.Render("▸ " + text)
	}
	return dimStyle.Render("  " + text)
}

func (m Model) renderStrategic() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Strategic Locations"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Number of locations: ◀ %s ▶  (%d-%d)\n\n",
		selectedStyle.Render(fmt.Sprintf("%d", m.topN)), MinTopN, MaxTopN))

	if m.ranked {
		s.WriteString(m.strategic.View())
	} else {
		s.WriteString(dimStyle.Render("Press enter to analyze strategic points"))
	}
	return contentStyle.Render(s.String())
}

func (m Model) renderRegions() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Regional Groups"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Resolution: ◀ %s ▶\n\n", selectedStyle.Render(fmt.Sprintf("%.1f", m.resolution))))

	if len(m.regions) == 0 {
		s.WriteString(dimStyle.Render("Press enter to analyze regions"))
		return contentStyle.Render(s.String())
	}

	boxes := make([]string, 0, len(m.regions))
	for _, r := range m.regions {
		members := make([]string, len(r.Members))
		for i, name := range r.Members {
			members[i] = "• " + visualization.DisplayName(name)
		}
		content := fmt.Sprintf("🏰 Region %d\nCapital: %s\nConnectivity: %.2f%%\nAvg Danger: %.2f/10\n\n%s",
			r.ID, visualization.DisplayName(r.Capital), r.Connectivity, r.AverageDanger,
			strings.Join(members, "\n"))
		boxes = append(boxes, boxStyle.Render(content))
	}

	// Wrap region boxes into rows that fit the terminal
	var rows []string
	var row []string
	rowWidth := 0
	for _, b := range boxes {
		w := lipgloss.Width(b)
		if len(row) > 0 && m.width > 0 && rowWidth+w > m.width-4 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, b)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	s.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return contentStyle.Render(s.String())
}
