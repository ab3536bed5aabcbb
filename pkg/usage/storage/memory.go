package storage

import (
	"context"
	"sync"

	"polaris-hq/polaris/pkg/usage"
)

// MemoryLedger implements Ledger with in-memory storage. All data is lost
// when the process exits.
//
// MemoryLedger is thread-safe. When maxEntries is exceeded, the oldest
// reports are evicted; TotalCost still reflects every report ever recorded.
type MemoryLedger struct {
	mu         sync.RWMutex
	reports    []*usage.Report
	totalCost  float64
	maxEntries int
}

// DefaultMaxEntries bounds the in-memory report history.
const DefaultMaxEntries = 10_000

// NewMemoryLedger creates an in-memory ledger. maxEntries <= 0 uses
// DefaultMaxEntries.
func NewMemoryLedger(maxEntries int) *MemoryLedger {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryLedger{maxEntries: maxEntries}
}

// Record implements Ledger.
func (m *MemoryLedger) Record(_ context.Context, report *usage.Report) error {
	clone := *report

	m.mu.Lock()
	defer m.mu.Unlock()

	m.reports = append(m.reports, &clone)
	m.totalCost += clone.Cost

	if over := len(m.reports) - m.maxEntries; over > 0 {
		m.reports = append([]*usage.Report(nil), m.reports[over:]...)
	}
	return nil
}

// List implements Ledger.
func (m *MemoryLedger) List(_ context.Context, limit int) ([]*usage.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.reports)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]*usage.Report, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		clone := *m.reports[i]
		out = append(out, &clone)
	}
	return out, nil
}

// TotalCost implements Ledger.
func (m *MemoryLedger) TotalCost(_ context.Context) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalCost, nil
}

// Close implements Ledger.
func (m *MemoryLedger) Close() error {
	return nil
}
