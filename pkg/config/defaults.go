package config

import (
	"time"

	"polaris-hq/polaris/pkg/providers"
)

// Default values applied to fields the configuration file omits.
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultProviderID    = "minimax"
	DefaultProviderKind  = providers.Kind("minimax")
	DefaultLedgerBackend = LedgerBackendMemory
	DefaultLedgerPath    = "polaris.db"
	DefaultListenAddress = "127.0.0.1:8080"
)

// ApplyDefaults fills in defaults for any zero-valued field.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Provider.Profile.ID == "" {
		cfg.Provider.Profile.ID = DefaultProviderID
	}
	if cfg.Provider.Profile.Kind == "" {
		cfg.Provider.Profile.Kind = DefaultProviderKind
	}

	if cfg.Ledger.Backend == "" {
		cfg.Ledger.Backend = DefaultLedgerBackend
	}
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = DefaultLedgerPath
	}

	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 120 * time.Second
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "polaris"
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = "provider"
	}
}
