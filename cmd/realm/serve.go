package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/realm-atlas/pkg/algorithms"
	"github.com/dd0wney/realm-atlas/pkg/config"
	"github.com/dd0wney/realm-atlas/pkg/graphql"
	"github.com/dd0wney/realm-atlas/pkg/health"
	"github.com/dd0wney/realm-atlas/pkg/logging"
	"github.com/dd0wney/realm-atlas/pkg/metrics"
	"github.com/dd0wney/realm-atlas/pkg/server"
	"github.com/dd0wney/realm-atlas/pkg/storage"
)

// systemMetricsInterval is how often uptime and memory gauges refresh
const systemMetricsInterval = 15 * time.Second

func newServeCmd(load loader) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the GraphQL API with health and metrics endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				a.cfg.HTTP.Addr = addr
			}
			return serve(cmd.Context(), a, cmd.Flag("config").Value.String())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultHTTPAddr, "listen address")
	return cmd
}

// newServeMux wires the HTTP endpoints. Readiness fails once draining
// reports true.
func newServeMux(a *app, registry *metrics.Registry, draining func() bool) (*http.ServeMux, error) {
	engine := a.engine(registry)

	schema, err := graphql.NewSchema(engine)
	if err != nil {
		return nil, err
	}

	source := func() *storage.Graph { return a.graph }
	checker := health.NewHealthChecker()
	checker.RegisterCheck("dataset", health.DatasetCheck(a.dataset.Name, source))
	checker.RegisterCheck("connectivity", health.ConnectivityCheck(source))
	checker.RegisterCheck("memory", health.MemoryCheck(health.RuntimeMemory))
	checker.RegisterReadinessCheck("dataset", health.DatasetCheck(a.dataset.Name, source))
	checker.RegisterReadinessCheck("server", health.DrainingCheck(draining))
	checker.RegisterLivenessCheck("process", health.SimpleCheck("process"))

	mux := http.NewServeMux()
	mux.Handle("/graphql", registry.Instrument("/graphql", graphql.NewGraphQLHandler(schema, a.logger)))
	mux.Handle("/metrics", registry.Handler())
	mux.Handle("/health", registry.Instrument("/health", checker.HTTPHandler()))
	mux.Handle("/health/ready", checker.ReadinessHandler())
	mux.Handle("/health/live", checker.LivenessHandler())
	return mux, nil
}

func serve(ctx context.Context, a *app, configPath string) error {
	started := time.Now()
	registry := metrics.NewRegistry()

	components := len(algorithms.ConnectedComponents(a.graph).Communities)
	registry.SetGraphStats(a.dataset.Name, a.dataset.Source, a.graph.NodeCount(), a.graph.RouteCount(), components)
	registry.UpdateSystemMetrics(started)

	var srv *server.GracefulServer
	mux, err := newServeMux(a, registry, func() bool {
		return srv != nil && srv.IsShuttingDown()
	})
	if err != nil {
		return fmt.Errorf("failed to build GraphQL schema: %w", err)
	}

	srv = server.NewGracefulServer(a.cfg.HTTP.Addr, mux,
		server.WithLogger(a.logger),
		server.WithShutdownTimeout(a.cfg.HTTP.ShutdownTimeout))

	// SIGHUP and config file edits re-read the log level; the dataset stays loaded
	srv.SetConfigReloadFunc(func() error {
		return a.reloadLogLevel(configPath)
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The helpers below stop once the server does
		defer cancel()
		return srv.Run(gctx)
	})

	g.Go(func() error {
		select {
		case <-srv.Ready():
			a.logger.Info("serving realm",
				logging.String("addr", srv.Addr()),
				logging.Int("locations", a.graph.NodeCount()),
				logging.Int("routes", a.graph.RouteCount()),
				logging.Int("components", components))
		case <-gctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(systemMetricsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				registry.UpdateSystemMetrics(started)
			}
		}
	})

	if configPath != "" {
		g.Go(func() error {
			return config.Watch(gctx, configPath, a.logger, func() {
				_ = srv.ReloadConfig()
			})
		})
	}

	return g.Wait()
}
