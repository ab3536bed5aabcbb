package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"polaris-hq/polaris/pkg/catalog"
	"polaris-hq/polaris/pkg/config"
	"polaris-hq/polaris/pkg/server"
	"polaris-hq/polaris/pkg/settings"
	"polaris-hq/polaris/pkg/telemetry/metrics"
	"polaris-hq/polaris/pkg/usage/storage"
)

var serveFlags struct {
	listenAddress string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Polaris HTTP service",
	Long: `Start the HTTP service. It caches model discovery results, builds and
records usage reports, and optionally exposes Prometheus metrics.

Endpoints:
  GET  /healthz            liveness probe
  GET  /v1/models          cached model snapshot (?refresh=true re-discovers)
  POST /v1/usage/reports   build and record a usage report
  GET  /v1/usage/reports   recorded reports, newest first
  GET  /metrics            Prometheus metrics (when enabled)

Examples:
  # Start with the default config file
  polaris serve

  # Override the listen address
  polaris serve --listen 0.0.0.0:8080

  # Validate config without starting
  polaris serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	if serveFlags.listenAddress != "" {
		rt.cfg.Server.ListenAddress = serveFlags.listenAddress
	}

	if serveFlags.dryRun {
		fmt.Println("configuration valid")
		return nil
	}

	ledger, err := newLedger(&rt.cfg.Ledger)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer ledger.Close()

	var m *metrics.Metrics
	if rt.cfg.Metrics.Enabled {
		m = metrics.New(metrics.Config{
			Namespace: rt.cfg.Metrics.Namespace,
			Subsystem: rt.cfg.Metrics.Subsystem,
		})
	}

	srv := server.New(&rt.cfg.Server, server.Deps{
		Profile:  rt.cfg.Provider.Profile,
		Strategy: rt.strategy,
		Resolver: rt.store,
		Ledger:   ledger,
		Metrics:  m,
		Logger:   rt.logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if rt.cfg.Settings.Watch && rt.cfg.Settings.Path != "" {
		watcher, err := settings.NewWatcher(rt.store, settings.WatcherConfig{}, rt.logger)
		if err != nil {
			return fmt.Errorf("watching settings: %w", err)
		}
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				rt.logger.Error("settings watcher stopped", "error", err)
			}
		}()
	}

	if rt.cfg.Catalog.RefreshSchedule != "" {
		refresher := catalog.NewRefresher(rt.cfg.Catalog.RefreshSchedule, srv.RefreshModels, rt.logger)
		if err := refresher.Start(ctx); err != nil {
			return fmt.Errorf("starting catalog refresher: %w", err)
		}
		defer refresher.Stop()
	}

	// Warm the model snapshot so the first GET /v1/models is served from
	// cache. A failed warm-up is not fatal: the handler retries on demand.
	if err := srv.RefreshModels(ctx); err != nil {
		rt.logger.Warn("initial model discovery failed", "error", err)
	}

	return srv.Start(ctx)
}

func newLedger(cfg *config.LedgerConfig) (storage.Ledger, error) {
	switch cfg.Backend {
	case config.LedgerBackendSQLite:
		return storage.NewSQLiteLedger(cfg.Path)
	case config.LedgerBackendMemory:
		return storage.NewMemoryLedger(cfg.MaxEntries), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Backend)
	}
}
