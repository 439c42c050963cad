// Package server runs the HTTP endpoints with signal-driven graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dd0wney/realm-atlas/pkg/logging"
)

// DefaultShutdownTimeout bounds how long in-flight requests may drain
const DefaultShutdownTimeout = 10 * time.Second

// ConfigReloadFunc is a function that reloads configuration
type ConfigReloadFunc func() error

// GracefulServer wraps an HTTP server with graceful shutdown capabilities.
// SIGINT and SIGTERM stop it; SIGHUP runs the reload function.
type GracefulServer struct {
	server          *http.Server
	logger          logging.Logger
	shutdownTimeout time.Duration

	shutdownCh   chan struct{}
	shutdownOnce sync.Once
	readyCh      chan struct{}
	readyOnce    sync.Once

	mu             sync.RWMutex
	addr           string
	configReloadFn ConfigReloadFunc
}

// Option configures a GracefulServer
type Option func(*GracefulServer)

// WithLogger sets the server's logger
func WithLogger(logger logging.Logger) Option {
	return func(gs *GracefulServer) {
		gs.logger = logger
	}
}

// WithShutdownTimeout sets how long shutdown waits for requests to finish
func WithShutdownTimeout(d time.Duration) Option {
	return func(gs *GracefulServer) {
		if d > 0 {
			gs.shutdownTimeout = d
		}
	}
}

// NewGracefulServer creates a new graceful HTTP server
func NewGracefulServer(addr string, handler http.Handler, opts ...Option) *GracefulServer {
	gs := &GracefulServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		logger:          logging.NewNopLogger(),
		shutdownTimeout: DefaultShutdownTimeout,
		shutdownCh:      make(chan struct{}),
		readyCh:         make(chan struct{}),
		addr:            addr,
	}
	for _, opt := range opts {
		opt(gs)
	}
	gs.logger = gs.logger.With(logging.Component("server"))
	return gs
}

// Run serves until ctx is cancelled, a termination signal arrives or
// Shutdown is called. A graceful stop returns nil.
func (gs *GracefulServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", gs.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", gs.server.Addr, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- gs.server.Serve(ln)
	}()

	gs.mu.Lock()
	gs.addr = ln.Addr().String()
	gs.mu.Unlock()
	gs.readyOnce.Do(func() { close(gs.readyCh) })
	gs.logger.Info("HTTP server listening", logging.String("addr", gs.Addr()))

	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case <-ctx.Done():
			return gs.stop("context cancelled", errCh)

		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				gs.logger.Info("received SIGHUP, reloading configuration")
				_ = gs.ReloadConfig()
				continue
			}
			return gs.stop(sig.String(), errCh)

		case <-gs.shutdownCh:
			<-errCh
			return nil
		}
	}
}

func (gs *GracefulServer) stop(reason string, errCh <-chan error) error {
	gs.logger.Info("starting graceful shutdown", logging.String("reason", reason))
	err := gs.Shutdown(gs.shutdownTimeout)
	<-errCh
	return err
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests. Only the first call has any effect.
func (gs *GracefulServer) Shutdown(timeout time.Duration) error {
	var err error
	gs.shutdownOnce.Do(func() {
		close(gs.shutdownCh)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		gs.logger.Info("initiating graceful shutdown", logging.Duration("timeout", timeout))

		if shutdownErr := gs.server.Shutdown(ctx); shutdownErr != nil {
			err = shutdownErr
			gs.logger.Error("error during shutdown", logging.Error(shutdownErr))
		} else {
			gs.logger.Info("server shutdown complete")
		}
	})
	return err
}

// Ready is closed once the server is listening
func (gs *GracefulServer) Ready() <-chan struct{} {
	return gs.readyCh
}

// Addr returns the listening address, resolved once Run has bound it
func (gs *GracefulServer) Addr() string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.addr
}

// IsShuttingDown returns true if shutdown has been initiated
func (gs *GracefulServer) IsShuttingDown() bool {
	select {
	case <-gs.shutdownCh:
		return true
	default:
		return false
	}
}

// SetConfigReloadFunc sets the function to call when configuration reload is triggered
func (gs *GracefulServer) SetConfigReloadFunc(fn ConfigReloadFunc) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.configReloadFn = fn
}

// ReloadConfig triggers a configuration reload
func (gs *GracefulServer) ReloadConfig() error {
	gs.mu.RLock()
	reloadFn := gs.configReloadFn
	gs.mu.RUnlock()

	if reloadFn == nil {
		gs.logger.Debug("configuration reload requested, but no reload function configured")
		return nil
	}

	if err := reloadFn(); err != nil {
		gs.logger.Error("configuration reload failed", logging.Error(err))
		return err
	}

	gs.logger.Info("configuration reload complete")
	return nil
}
