// Package console implements the interactive realm> prompt.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/realm-atlas/pkg/algorithms"
	"github.com/dd0wney/realm-atlas/pkg/analysis"
	"github.com/dd0wney/realm-atlas/pkg/storage"
	"github.com/dd0wney/realm-atlas/pkg/visualization"
)

// Options holds the defaults used when a command omits an argument
type Options struct {
	Title      string
	TopN       int
	Resolution float64
	Map        visualization.MapOptions
}

// Console reads commands line by line and writes results to out
type Console struct {
	engine *analysis.Engine
	graph  *storage.Graph
	opts   Options
	out    io.Writer
}

// New creates a console over an analysis engine
func New(engine *analysis.Engine, out io.Writer, opts Options) *Console {
	if opts.Title == "" {
		opts.Title = "Realm Statistics"
	}
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.Resolution <= 0 {
		opts.Resolution = 1.0
	}
	return &Console{
		engine: engine,
		graph:  engine.Graph(),
		opts:   opts,
		out:    out,
	}
}

// Run processes commands from in until exit or end of input
func (c *Console) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(c.out, "Type 'help' for available commands, 'exit' to quit")

	for {
		fmt.Fprint(c.out, "realm> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if !c.Execute(input) {
			fmt.Fprintln(c.out, "👋 Safe travels!")
			break
		}
		fmt.Fprintln(c.out)
	}
	return scanner.Err()
}

// Execute runs one command line. It returns false when the console should
// stop.
func (c *Console) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "exit", "quit":
		return false

	case "help", "?":
		c.showHelp()

	case "stats", "status":
		c.showStats()

	case "locations", "ls":
		c.listLocations(args)

	case "routes":
		c.listRoutes(args)

	case "path", "p":
		if len(args) != 2 {
			fmt.Fprintln(c.out, "Usage: path <from> <to>")
			return true
		}
		c.findPath(args[0], args[1])

	case "strategic", "s":
		n := c.opts.TopN
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Fprintf(c.out, "❌ Invalid count %q\n", args[0])
				return true
			}
			n = v
		}
		c.strategic(n)

	case "regions", "r":
		resolution := c.opts.Resolution
		if len(args) > 0 {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				fmt.Fprintf(c.out, "❌ Invalid resolution %q\n", args[0])
				return true
			}
			resolution = v
		}
		c.regions(resolution)

	case "near", "n":
		if len(args) < 1 || len(args) > 2 {
			fmt.Fprintln(c.out, "Usage: near <location> [hops]")
			return true
		}
		hops := algorithms.DefaultHops
		if len(args) == 2 {
			v, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintf(c.out, "❌ Invalid hop count %q\n", args[1])
				return true
			}
			hops = v
		}
		c.nearby(args[0], hops)

	case "map", "m":
		if len(args) != 0 && len(args) != 2 {
			fmt.Fprintln(c.out, "Usage: map [from to]")
			return true
		}
		c.showMap(args)

	case "clear":
		fmt.Fprint(c.out, "\033[H\033[2J")

	default:
		fmt.Fprintf(c.out, "❌ Unknown command: %s (type 'help' for available commands)\n", command)
	}
	return true
}

func (c *Console) showHelp() {
	help := `📖 Available Commands:

🔍 Inspection:
  stats                   Show realm statistics
  locations [kind]        List locations, optionally of one kind
  routes [location]       List routes, optionally from one location

🧭 Analysis:
  path <from> <to>        Find the safest path
  strategic [n]           Rank the n most strategic locations
  regions [resolution]    Group locations into regions
  near <location> [hops]  List locations within a few routes

🗺️  Map:
  map [from to]           Draw the map, optionally with the safest path

🎮 Other:
  clear                   Clear screen
  help                    Show this help
  exit/quit               Exit the console

💡 Examples:
  path Bree Mount_Doom
  strategic 8
  regions 1.5`
	fmt.Fprintln(c.out, help)
}

func (c *Console) showStats() {
	summary, err := c.engine.Summary(c.opts.Resolution)
	if err != nil {
		fmt.Fprintf(c.out, "❌ %v\n", err)
		return
	}
	WriteSummary(c.out, c.opts.Title, summary)
}

func (c *Console) listLocations(args []string) {
	var kind storage.LocationKind
	if len(args) > 0 {
		kind = storage.LocationKind(strings.ToLower(args[0]))
		if !kind.Valid() {
			fmt.Fprintf(c.out, "❌ Unknown kind %q\n", args[0])
			return
		}
	}

	fmt.Fprintln(c.out, "📋 Locations")
	fmt.Fprintln(c.out, rule)
	count := 0
	for _, loc := range c.graph.Locations() {
		if kind != "" && loc.Kind != kind {
			continue
		}
		fmt.Fprintf(c.out, "  %c %-18s %-9s (%g, %g)\n", visualization.Glyph(loc.Kind),
			visualization.DisplayName(loc.Name), loc.Kind, loc.Position.X, loc.Position.Y)
		count++
	}
	fmt.Fprintf(c.out, "\n%d locations\n", count)
}

func (c *Console) listRoutes(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "🛤️  Routes")
		fmt.Fprintln(c.out, rule)
		for _, r := range c.graph.Routes() {
			c.printRoute(r.From, r.To, r.Danger, r.Type)
		}
		fmt.Fprintf(c.out, "\n%d routes\n", c.graph.RouteCount())
		return
	}

	edges, err := c.graph.GetOutgoingEdges(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "❌ Location %s not found\n", args[0])
		return
	}
	fmt.Fprintf(c.out, "🛤️  Routes from %s\n", visualization.DisplayName(args[0]))
	fmt.Fprintln(c.out, rule)
	for _, e := range edges {
		c.printRoute(e.From, e.To, e.Danger, e.Type)
	}
	fmt.Fprintf(c.out, "\n%d routes\n", len(edges))
}

func (c *Console) printRoute(from, to string, danger int, t storage.RouteType) {
	fmt.Fprintf(c.out, "  %s ─ %s  %s, danger %d/10\n",
		visualization.DisplayName(from), visualization.DisplayName(to),
		strings.ReplaceAll(string(t), "_", " "), danger)
}

func (c *Console) findPath(from, to string) {
	result, err := c.engine.SafestPath(from, to)
	if err != nil {
		if analysis.IsNoPath(err) {
			fmt.Fprintln(c.out, "❌ No safe path found! Maybe try taking the eagles?")
			return
		}
		fmt.Fprintf(c.out, "❌ %v\n", err)
		return
	}
	WritePath(c.out, result)
}

func (c *Console) nearby(origin string, hops int) {
	result, err := c.engine.Nearby(origin, hops, 0)
	if err != nil {
		fmt.Fprintf(c.out, "❌ %v\n", err)
		return
	}
	WriteNearby(c.out, result)
}

func (c *Console) strategic(n int) {
	stats, err := c.engine.StrategicLocations(n)
	if err != nil {
		fmt.Fprintf(c.out, "❌ %v\n", err)
		return
	}
	WriteStrategic(c.out, stats)
}

func (c *Console) regions(resolution float64) {
	regions, err := c.engine.Regions(resolution)
	if err != nil {
		fmt.Fprintf(c.out, "❌ %v\n", err)
		return
	}
	WriteRegions(c.out, regions)
}

func (c *Console) showMap(args []string) {
	opts := c.opts.Map
	if len(args) == 2 {
		result, err := c.engine.SafestPath(args[0], args[1])
		if err != nil {
			fmt.Fprintf(c.out, "❌ %v\n", err)
			return
		}
		opts.Highlight = result.Path
	}

	m, err := visualization.Render(c.graph, opts)
	if err != nil {
		fmt.Fprintf(c.out, "❌ %v\n", err)
		return
	}
	fmt.Fprint(c.out, m.String())
}
