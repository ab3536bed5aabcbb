package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate checks the final configuration state.
func Validate(cfg *Config) error {
	var errs []string

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level: unknown level %q", cfg.Logging.Level))
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("logging.format: unknown format %q", cfg.Logging.Format))
	}

	if cfg.Provider.Profile.ID == "" {
		errs = append(errs, "provider.id: must not be empty")
	}
	if cfg.Provider.Profile.Kind == "" {
		errs = append(errs, "provider.kind: must not be empty")
	}

	if cfg.Catalog.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Catalog.RefreshSchedule); err != nil {
			errs = append(errs, fmt.Sprintf("catalog.refresh_schedule: %v", err))
		}
	}

	switch cfg.Ledger.Backend {
	case LedgerBackendMemory:
	case LedgerBackendSQLite:
		if cfg.Ledger.Path == "" {
			errs = append(errs, "ledger.path: required for the sqlite backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("ledger.backend: unknown backend %q (supported: memory, sqlite)", cfg.Ledger.Backend))
	}

	if cfg.Server.ListenAddress == "" {
		errs = append(errs, "server.listen_address: must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
