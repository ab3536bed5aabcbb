package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"polaris-hq/polaris/pkg/catalog"
	"polaris-hq/polaris/pkg/config"
	"polaris-hq/polaris/pkg/providers"
	"polaris-hq/polaris/pkg/providers/minimax"
	"polaris-hq/polaris/pkg/settings"
	"polaris-hq/polaris/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "polaris",
	Short: "Polaris - MiniMax provider adapter and usage accountant",
	Long: `Polaris adapts MiniMax's Anthropic-compatible API into a uniform
provider surface: model discovery with a static fallback list, per-call
cost computation against a pricing catalog, and environment mapping for
aider subprocesses.

It can run as a one-shot CLI or as an HTTP service that caches discovery
results and records usage reports in a ledger.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "polaris.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// runtime bundles the collaborators every command needs: loaded
// configuration, logging, the settings store, the model catalog, and the
// provider strategy registered for the configured profile.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *settings.Store
	catalog  *catalog.Catalog
	registry *providers.Registry
	strategy providers.Strategy
}

func setup() (*runtime, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.Setup(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}

	store, err := settings.NewStore(cfg.Settings.Path)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	cat := catalog.New(minimax.DefaultCatalogSeed())
	if cfg.Catalog.Path != "" {
		entries, err := catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		cat.Merge(entries)
	}

	registry := providers.NewRegistry()
	registry.Register(minimax.New(minimax.Options{
		Catalog: cat,
		Logger:  logger,
	}))

	strategy, err := registry.ForProfile(cfg.Provider.Profile)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		catalog:  cat,
		registry: registry,
		strategy: strategy,
	}, nil
}
