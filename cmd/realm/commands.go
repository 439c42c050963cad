package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dd0wney/realm-atlas/pkg/analysis"
	"github.com/dd0wney/realm-atlas/pkg/config"
	"github.com/dd0wney/realm-atlas/pkg/console"
	"github.com/dd0wney/realm-atlas/pkg/dashboard"
	"github.com/dd0wney/realm-atlas/pkg/dataset"
	"github.com/dd0wney/realm-atlas/pkg/visualization"
)

// newRootCmd builds the command tree. Streams are injected so tests can
// drive the commands without a terminal.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "realm",
		Short: "Route planning and strategic analysis for a fantasy realm",
		Long: `realm loads a map of locations joined by routes of varying danger and
answers three questions about it: the safest path between two places, the
most strategic locations, and how the realm divides into regions.`,
		SilenceUsage: true,
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVarP(&flags.dataset, "dataset", "d", dataset.DefaultName, "embedded dataset name or path to a dataset file")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "json", "log format (json, text)")
	pf.BoolVar(&flags.json, "json", false, "print results as JSON")

	load := func(cmd *cobra.Command) (*app, error) {
		return loadApp(cmd, flags, stderr)
	}

	rootCmd.AddCommand(
		newPathCmd(load, flags),
		newStrategicCmd(load, flags),
		newRegionsCmd(load, flags),
		newStatsCmd(load, flags),
		newMapCmd(load, flags),
		newDatasetsCmd(),
		newConsoleCmd(load),
		newDashboardCmd(load),
		newServeCmd(load),
	)
	return rootCmd
}

type loader func(cmd *cobra.Command) (*app, error)

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newPathCmd(load loader, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "path <from> <to>",
		Short:   "Find the safest route between two locations",
		Aliases: []string{"p"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			result, err := a.engine(nil).SafestPath(args[0], args[1])
			if analysis.IsNoPath(err) {
				return fmt.Errorf("no safe path found from %s to %s, maybe try taking the eagles", args[0], args[1])
			}
			if err != nil {
				return err
			}

			if flags.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			console.WritePath(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newStrategicCmd(load loader, flags *globalFlags) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:     "strategic",
		Short:   "Rank locations by how many safest paths pass through them",
		Aliases: []string{"s"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("top") {
				top = a.cfg.Analysis.TopN
			}
			stats, err := a.engine(nil).StrategicLocations(top)
			if err != nil {
				return err
			}

			if flags.json {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			console.WriteStrategic(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	cmd.Flags().IntVarP(&top, "top", "n", config.DefaultTopN, "number of locations to list")
	return cmd
}

func newRegionsCmd(load loader, flags *globalFlags) *cobra.Command {
	var resolution float64
	cmd := &cobra.Command{
		Use:     "regions",
		Short:   "Group locations into regions by community detection",
		Aliases: []string{"r"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("resolution") {
				resolution = a.cfg.Analysis.Resolution
			}
			regions, err := a.engine(nil).Regions(resolution)
			if err != nil {
				return err
			}

			if flags.json {
				return writeJSON(cmd.OutOrStdout(), regions)
			}
			console.WriteRegions(cmd.OutOrStdout(), regions)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&resolution, "resolution", "r", config.DefaultResolution, "community resolution; higher values give more, smaller regions")
	return cmd
}

func newStatsCmd(load loader, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the loaded map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			summary, err := a.engine(nil).Summary(a.cfg.Analysis.Resolution)
			if err != nil {
				return err
			}

			if flags.json {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			console.WriteSummary(cmd.OutOrStdout(), a.dataset.Title, summary)
			return nil
		},
	}
}

func newMapCmd(load loader, flags *globalFlags) *cobra.Command {
	var (
		from, to      string
		width, height int
		grid, legend  bool
	)
	cmd := &cobra.Command{
		Use:     "map",
		Short:   "Draw the map, optionally highlighting the safest path",
		Aliases: []string{"m"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			if (from == "") != (to == "") {
				return fmt.Errorf("--from and --to must be given together")
			}

			opts := a.mapOptions()
			opts.Grid = grid
			opts.Legend = legend
			if cmd.Flags().Changed("width") {
				opts.Width = width
			}
			if cmd.Flags().Changed("height") {
				opts.Height = height
			}
			if from != "" {
				result, err := a.engine(nil).SafestPath(from, to)
				if err != nil {
					return err
				}
				opts.Highlight = result.Path
			}

			m, err := visualization.Render(a.graph, opts)
			if err != nil {
				return err
			}

			if flags.json {
				data, err := m.ExportJSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), m.String())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&from, "from", "", "start of the path to highlight")
	f.StringVar(&to, "to", "", "end of the path to highlight")
	f.IntVar(&width, "width", config.DefaultMapWidth, "canvas width in characters")
	f.IntVar(&height, "height", config.DefaultMapHeight, "canvas height in rows")
	f.BoolVar(&grid, "grid", false, "draw a coordinate grid")
	f.BoolVar(&legend, "legend", true, "print the legend")
	return cmd
}

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the embedded datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range dataset.Names() {
				marker := " "
				if name == dataset.DefaultName {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func newConsoleCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start an interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			c := console.New(a.engine(nil), cmd.OutOrStdout(), console.Options{
				Title:      a.dataset.Title + " Statistics",
				TopN:       a.cfg.Analysis.TopN,
				Resolution: a.cfg.Analysis.Resolution,
				Map:        a.mapOptions(),
			})
			return c.Run(cmd.InOrStdin())
		},
	}
}

func newDashboardCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Short:   "Open the terminal dashboard",
		Aliases: []string{"tui"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return errors.New("the dashboard needs a terminal, try the console command instead")
			}
			a, err := load(cmd)
			if err != nil {
				return err
			}
			opts := a.mapOptions()
			opts.Legend = false
			return dashboard.Run(a.engine(nil), dashboard.Options{
				Title:      a.dataset.Title + " Route Planner",
				TopN:       a.cfg.Analysis.TopN,
				Resolution: a.cfg.Analysis.Resolution,
				Map:        opts,
			})
		},
	}
}
