package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults and POLARIS_*
// environment overrides, and validates the result.
//
// A missing file is not an error: the defaults plus environment overrides
// form a usable configuration on their own.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies POLARIS_SECTION_FIELD environment variables on
// top of the loaded configuration.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("POLARIS_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("POLARIS_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	if val := os.Getenv("POLARIS_PROVIDER_API_KEY"); val != "" {
		cfg.Provider.Profile.APIKey = val
	}
	if val := os.Getenv("POLARIS_PROVIDER_PROJECT_DIR"); val != "" {
		cfg.Provider.ProjectDir = val
	}

	if val := os.Getenv("POLARIS_CATALOG_PATH"); val != "" {
		cfg.Catalog.Path = val
	}
	if val := os.Getenv("POLARIS_CATALOG_REFRESH_SCHEDULE"); val != "" {
		cfg.Catalog.RefreshSchedule = val
	}

	if val := os.Getenv("POLARIS_SETTINGS_PATH"); val != "" {
		cfg.Settings.Path = val
	}
	if val := os.Getenv("POLARIS_SETTINGS_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Settings.Watch = b
		}
	}

	if val := os.Getenv("POLARIS_LEDGER_BACKEND"); val != "" {
		cfg.Ledger.Backend = val
	}
	if val := os.Getenv("POLARIS_LEDGER_PATH"); val != "" {
		cfg.Ledger.Path = val
	}

	if val := os.Getenv("POLARIS_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("POLARIS_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("POLARIS_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	if val := os.Getenv("POLARIS_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
}
