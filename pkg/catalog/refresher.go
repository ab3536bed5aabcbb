package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// RefreshFunc performs one refresh cycle (typically re-running model
// discovery and swapping a cached snapshot).
type RefreshFunc func(ctx context.Context) error

// Refresher runs a refresh job on a cron schedule.
type Refresher struct {
	schedule string
	job      RefreshFunc
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewRefresher creates a refresher for the given standard cron expression
// (e.g., "0 * * * *" for hourly).
func NewRefresher(schedule string, job RefreshFunc, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		schedule: schedule,
		job:      job,
		cron:     cron.New(),
		logger:   logger.With("component", "catalog.refresher"),
	}
}

// Start begins scheduled refreshing. An empty schedule disables the
// refresher without error. The refresher stops when the context is
// cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule == "" {
		r.logger.Info("refresh schedule not configured, skipping refresher")
		return nil
	}
	if r.running {
		return fmt.Errorf("refresher already running")
	}

	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", r.schedule, err)
	}

	_, err := r.cron.AddFunc(r.schedule, func() {
		r.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	r.cron.Start()
	r.running = true

	r.logger.Info("catalog refresher started", "schedule", r.schedule)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()

	return nil
}

// Stop halts scheduled refreshing and waits for a running job to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
	r.running = false

	r.logger.Info("catalog refresher stopped")
}

func (r *Refresher) runOnce(ctx context.Context) {
	r.logger.Debug("starting scheduled catalog refresh")

	if err := r.job(ctx); err != nil {
		r.logger.Error("scheduled catalog refresh failed", "error", err)
		return
	}

	r.logger.Info("scheduled catalog refresh completed")
}
