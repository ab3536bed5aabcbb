package storage

import (
	"context"

	"polaris-hq/polaris/pkg/usage"
)

// Ledger records usage reports and answers simple spend queries.
// Implementations must be safe for concurrent use.
type Ledger interface {
	// Record persists one usage report.
	Record(ctx context.Context, report *usage.Report) error

	// List returns the most recent reports, newest first, up to limit.
	// A non-positive limit returns all reports.
	List(ctx context.Context, limit int) ([]*usage.Report, error)

	// TotalCost returns the sum of all recorded call costs.
	TotalCost(ctx context.Context) (float64, error)

	// Close releases backend resources. The ledger must not be used after
	// Close.
	Close() error
}
