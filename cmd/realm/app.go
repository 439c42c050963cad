package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dd0wney/realm-atlas/pkg/analysis"
	"github.com/dd0wney/realm-atlas/pkg/config"
	"github.com/dd0wney/realm-atlas/pkg/dataset"
	"github.com/dd0wney/realm-atlas/pkg/logging"
	"github.com/dd0wney/realm-atlas/pkg/metrics"
	"github.com/dd0wney/realm-atlas/pkg/storage"
	"github.com/dd0wney/realm-atlas/pkg/visualization"
)

// globalFlags are the persistent flags shared by every subcommand
type globalFlags struct {
	configPath string
	dataset    string
	logLevel   string
	logFormat  string
	json       bool
}

// app is the loaded state a subcommand works with
type app struct {
	cfg     *config.Config
	logger  logging.Logger
	dataset *dataset.Dataset
	graph   *storage.Graph

	// logLevelFlag is the --log-level value when given; it outranks reloads
	logLevelFlag string
}

// loadApp resolves configuration, applies flag overrides and loads the
// dataset into a graph
func loadApp(cmd *cobra.Command, flags *globalFlags, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	pf := cmd.Flags()
	if pf.Changed("dataset") {
		cfg.Dataset = flags.dataset
	}
	if pf.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if pf.Changed("log-format") {
		cfg.Log.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger(stderr).With(logging.Dataset(cfg.Dataset))

	ds, err := dataset.Open(cfg.Dataset)
	if err != nil {
		return nil, err
	}
	graph, err := ds.Graph()
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}

	logger.Debug("dataset loaded",
		logging.String("source", ds.Source),
		logging.Int("locations", graph.NodeCount()),
		logging.Int("routes", graph.RouteCount()))

	a := &app{cfg: cfg, logger: logger, dataset: ds, graph: graph}
	if pf.Changed("log-level") {
		a.logLevelFlag = flags.logLevel
	}
	return a, nil
}

// reloadLogLevel re-reads the config file at path and applies its log
// level, unless --log-level pinned one on the command line
func (a *app) reloadLogLevel(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if a.logLevelFlag != "" {
		level = a.logLevelFlag
	}
	a.logger.SetLevel(logging.ParseLevel(level))
	a.logger.Info("log level reloaded", logging.String("level", level))
	return nil
}

// engine creates an analysis engine logging through the app's logger
func (a *app) engine(registry *metrics.Registry) *analysis.Engine {
	opts := []analysis.Option{analysis.WithLogger(a.logger)}
	if registry != nil {
		opts = append(opts, analysis.WithMetrics(registry))
	}
	return analysis.NewEngine(a.graph, opts...)
}

// mapOptions returns the configured canvas for the dataset's extent
func (a *app) mapOptions() visualization.MapOptions {
	return visualization.MapOptions{
		Width:  a.cfg.Map.Width,
		Height: a.cfg.Map.Height,
		Source: visualization.Bounds{
			Width:  a.dataset.Extent.Width,
			Height: a.dataset.Extent.Height,
		},
		Legend: true,
	}
}
