package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"polaris-hq/polaris/pkg/config"
	"polaris-hq/polaris/pkg/providers"
	"polaris-hq/polaris/pkg/settings"
	"polaris-hq/polaris/pkg/telemetry/metrics"
	"polaris-hq/polaris/pkg/usage/storage"
)

// Deps are the collaborators the server operates on.
type Deps struct {
	// Profile is the provider profile the server acts on.
	Profile providers.Profile

	// Strategy handles the profile's provider kind.
	Strategy providers.Strategy

	// Resolver resolves environment variables for discovery.
	Resolver settings.Resolver

	// Ledger records the usage reports the server builds.
	Ledger storage.Ledger

	// Metrics records discovery and cost metrics. Nil disables /metrics.
	Metrics *metrics.Metrics

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server is the Polaris HTTP service.
type Server struct {
	config     *config.ServerConfig
	deps       Deps
	httpServer *http.Server
	logger     *slog.Logger

	shutdownChan chan struct{}
	shutdownOnce sync.Once

	// snapshot is the cached discovery result served by GET /v1/models.
	snapshotMu sync.RWMutex
	snapshot   []providers.Model
}

// New creates a server.
func New(cfg *config.ServerConfig, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Server{
		config:       cfg,
		deps:         deps,
		logger:       deps.Logger.With("component", "server"),
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until the context is cancelled,
// a shutdown signal arrives, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddress,
		Handler:      s.routes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "address", s.config.ListenAddress)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		return nil
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		defer close(s.shutdownChan)

		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		s.logger.Info("shutting down server")
		err = s.httpServer.Shutdown(shutdownCtx)
	})
	return err
}

// RefreshModels runs discovery and replaces the cached model snapshot.
// It is the job wired into the catalog refresher in serve mode.
func (s *Server) RefreshModels(ctx context.Context) error {
	result := s.deps.Strategy.ListModels(ctx, s.deps.Profile, s.deps.Resolver)
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordDiscovery(s.deps.Profile.ID, result)
	}
	if !result.Success {
		return fmt.Errorf("model discovery failed: %s", result.Error)
	}

	s.snapshotMu.Lock()
	s.snapshot = result.Models
	s.snapshotMu.Unlock()

	s.logger.Info("model snapshot refreshed",
		"provider", s.deps.Profile.ID,
		"models", len(result.Models),
		"source", string(result.Source),
	)
	return nil
}

// cachedModels returns the current snapshot, or nil if none exists yet.
func (s *Server) cachedModels() []providers.Model {
	s.snapshotMu.RLock()
	defer s.snapshotMu.RUnlock()
	return s.snapshot
}
