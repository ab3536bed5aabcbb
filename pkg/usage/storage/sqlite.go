package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"polaris-hq/polaris/pkg/usage"
)

// SQLiteLedger implements Ledger using a SQLite file. It is suitable for
// single-instance deployments where spend history must survive restarts.
//
// The database is opened in WAL mode with a busy timeout so a reader (e.g.,
// a CLI inspecting the ledger) does not fail against a writing server.
type SQLiteLedger struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS usage_reports (
	id                 TEXT PRIMARY KEY,
	task_id            TEXT NOT NULL DEFAULT '',
	provider           TEXT NOT NULL,
	model              TEXT NOT NULL,
	sent_tokens        INTEGER NOT NULL,
	received_tokens    INTEGER NOT NULL,
	cache_write_tokens INTEGER NOT NULL,
	cache_read_tokens  INTEGER NOT NULL,
	cost               REAL NOT NULL,
	total_cost         REAL NOT NULL,
	created_at         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_usage_reports_created_at ON usage_reports(created_at);
`

// NewSQLiteLedger opens (and if needed initializes) a ledger database at
// the given path.
func NewSQLiteLedger(path string) (*SQLiteLedger, error) {
	if path == "" {
		return nil, fmt.Errorf("ledger path cannot be empty")
	}

	// modernc.org/sqlite applies pragmas via _pragma=name(value) DSN
	// parameters; the mattn-style _journal_mode form is silently ignored.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}

	return &SQLiteLedger{db: db}, nil
}

// Record implements Ledger.
func (l *SQLiteLedger) Record(ctx context.Context, report *usage.Report) error {
	const query = `
		INSERT INTO usage_reports (
			id, task_id, provider, model,
			sent_tokens, received_tokens, cache_write_tokens, cache_read_tokens,
			cost, total_cost, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := l.db.ExecContext(ctx, query,
		report.ID, report.TaskID, report.Provider, report.Model,
		report.SentTokens, report.ReceivedTokens, report.CacheWriteTokens, report.CacheReadTokens,
		report.Cost, report.TotalCost, report.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record usage report: %w", err)
	}
	return nil
}

// List implements Ledger.
func (l *SQLiteLedger) List(ctx context.Context, limit int) ([]*usage.Report, error) {
	query := `
		SELECT id, task_id, provider, model,
		       sent_tokens, received_tokens, cache_write_tokens, cache_read_tokens,
		       cost, total_cost, created_at
		FROM usage_reports
		ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage reports: %w", err)
	}
	defer rows.Close()

	var reports []*usage.Report
	for rows.Next() {
		var r usage.Report
		var createdAt string
		if err := rows.Scan(
			&r.ID, &r.TaskID, &r.Provider, &r.Model,
			&r.SentTokens, &r.ReceivedTokens, &r.CacheWriteTokens, &r.CacheReadTokens,
			&r.Cost, &r.TotalCost, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan usage report: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = t
		}
		reports = append(reports, &r)
	}
	return reports, rows.Err()
}

// TotalCost implements Ledger.
func (l *SQLiteLedger) TotalCost(ctx context.Context) (float64, error) {
	var total sql.NullFloat64
	err := l.db.QueryRowContext(ctx, `SELECT SUM(cost) FROM usage_reports`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum usage costs: %w", err)
	}
	return total.Float64, nil
}

// Close implements Ledger.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
