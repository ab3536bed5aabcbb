package config

import (
	"time"

	"polaris-hq/polaris/pkg/providers"
)

// Config is the root configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Provider ProviderConfig `yaml:"provider"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Settings SettingsConfig `yaml:"settings"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Server   ServerConfig   `yaml:"server"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level"`

	// Format is the log output format (json, text).
	Format string `yaml:"format"`

	// AddSource includes file:line in log entries.
	AddSource bool `yaml:"add_source"`
}

// ProviderConfig configures the provider profile Polaris acts on.
type ProviderConfig struct {
	// Profile is the provider profile (id, kind, optional key, headers).
	Profile providers.Profile `yaml:",inline"`

	// ProjectDir scopes environment resolution during client construction.
	ProjectDir string `yaml:"project_dir"`
}

// CatalogConfig configures model metadata.
type CatalogConfig struct {
	// Path is an optional YAML file with pricing overrides.
	Path string `yaml:"path"`

	// RefreshSchedule is a cron expression for periodic re-discovery in
	// serve mode. Empty disables refreshing.
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// SettingsConfig configures the settings store used for environment
// variable resolution.
type SettingsConfig struct {
	// Path is the settings file. Empty resolves from the process
	// environment only.
	Path string `yaml:"path"`

	// Watch reloads the settings file on change (serve mode only).
	Watch bool `yaml:"watch"`
}

// LedgerConfig configures usage report persistence for serve mode.
type LedgerConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// Path is the SQLite database file (sqlite backend only).
	Path string `yaml:"path"`

	// MaxEntries bounds the in-memory history (memory backend only).
	MaxEntries int `yaml:"max_entries"`
}

// ServerConfig configures the HTTP server for serve mode.
type ServerConfig struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

// Ledger backend names.
const (
	LedgerBackendMemory = "memory"
	LedgerBackendSQLite = "sqlite"
)
