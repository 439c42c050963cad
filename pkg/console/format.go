package console

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dd0wney/realm-atlas/pkg/analysis"
	"github.com/dd0wney/realm-atlas/pkg/storage"
	"github.com/dd0wney/realm-atlas/pkg/visualization"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

func displayAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = visualization.DisplayName(n)
	}
	return out
}

// WritePath prints a journey with its step-by-step breakdown
func WritePath(w io.Writer, result *analysis.PathResult) {
	fmt.Fprintln(w, "🚶 Journey Details")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Danger Score: %d\n", result.TotalDanger)
	fmt.Fprintf(w, "Complete Path: %s\n", strings.Join(displayAll(result.Path), " → "))

	if len(result.Steps) == 0 {
		return
	}
	fmt.Fprintln(w, "\nStep by Step Breakdown:")
	for i, s := range result.Steps {
		fmt.Fprintf(w, "  %2d. %s to %s: %s, danger %d/10\n", i+1,
			visualization.DisplayName(s.From),
			visualization.DisplayName(s.To),
			strings.ReplaceAll(string(s.RouteType), "_", " "),
			s.Danger)
	}
}

// WriteStrategic prints the strategic ranking
func WriteStrategic(w io.Writer, stats []analysis.LocationStat) {
	fmt.Fprintln(w, "🗺️  Strategic Locations Identified")
	fmt.Fprintln(w, rule)
	for i, s := range stats {
		fmt.Fprintf(w, "  %2d. %-16s Score: %6.2f%%  Connected Paths: %2d  Average Danger: %.2f/10\n",
			i+1, visualization.DisplayName(s.Name), s.Score, s.Connections, s.AverageDanger)
	}
}

// WriteNearby prints the locations around an origin, one line per hop
func WriteNearby(w io.Writer, result *analysis.NearbyResult) {
	fmt.Fprintf(w, "🧭 Near %s\n", visualization.DisplayName(result.Origin))
	fmt.Fprintln(w, rule)
	for _, ring := range result.Rings {
		fmt.Fprintf(w, "  %d hop(s): %s\n", ring.Hops, strings.Join(displayAll(ring.Locations), ", "))
	}
	fmt.Fprintf(w, "\n%d locations\n", result.Total)
}

// WriteRegions prints each region with its capital and members
func WriteRegions(w io.Writer, regions []analysis.CommunityStat) {
	fmt.Fprintln(w, "🏰 Regional Analysis")
	fmt.Fprintln(w, rule)
	for _, r := range regions {
		fmt.Fprintf(w, "Region %d - Capital: %s\n", r.ID, visualization.DisplayName(r.Capital))
		fmt.Fprintf(w, "  Member Locations: %s\n", strings.Join(displayAll(r.Members), ", "))
		fmt.Fprintf(w, "  Regional Connectivity: %.2f%%\n", r.Connectivity)
		fmt.Fprintf(w, "  Average Danger Level: %.2f/10\n", r.AverageDanger)
	}
}

// WriteSummary prints graph statistics
func WriteSummary(w io.Writer, title string, s *analysis.GraphSummary) {
	fmt.Fprintf(w, "📊 %s\n", title)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Locations:          %d\n", s.Locations)
	fmt.Fprintf(w, "  Routes:             %d (%d dangerous)\n", s.Routes, s.DangerousRoutes)
	fmt.Fprintf(w, "  Average Danger:     %.2f/10\n", s.AverageDanger)
	fmt.Fprintf(w, "  Components:         %d\n", s.Components)
	fmt.Fprintf(w, "  Avg Clustering:     %.2f\n", s.AverageClustering)
	fmt.Fprintf(w, "  Regions:            %d (modularity %.2f)\n", s.Regions, s.Modularity)

	kinds := make([]string, 0, len(s.KindCounts))
	for k := range s.KindCounts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s %d", k, s.KindCounts[storage.LocationKind(k)])
	}
	fmt.Fprintf(w, "  Kinds:              %s\n", strings.Join(parts, ", "))
}
