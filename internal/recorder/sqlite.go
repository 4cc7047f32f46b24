// Package recorder persists analysis run history to SQLite
package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id          TEXT PRIMARY KEY,
	run_at          INTEGER NOT NULL,
	portfolio_name  TEXT NOT NULL,
	holding_count   INTEGER NOT NULL,
	degraded_count  INTEGER NOT NULL,
	total_value     REAL NOT NULL,
	diversification REAL NOT NULL,
	risk            REAL NOT NULL,
	sentiment       TEXT NOT NULL,
	payload         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_run_at ON runs(run_at DESC);
`

// SQLiteRecorder stores one row per assembled analysis, with the full
// report serialized alongside the summary columns.
type SQLiteRecorder struct {
	db     *sql.DB
	logger *common.Logger
}

// NewSQLiteRecorder opens (or creates) the run history database
func NewSQLiteRecorder(path string, logger *common.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create run history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate run history schema: %w", err)
	}

	return &SQLiteRecorder{db: db, logger: logger}, nil
}

// RecordRun stores one assembled analysis
func (r *SQLiteRecorder) RecordRun(ctx context.Context, analysis *models.Analysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
			(run_id, run_at, portfolio_name, holding_count, degraded_count,
			 total_value, diversification, risk, sentiment, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		analysis.RunID,
		analysis.RunAt.Unix(),
		analysis.PortfolioName,
		len(analysis.Holdings),
		analysis.DegradedCount,
		analysis.TotalValue,
		analysis.Scores.Diversification,
		analysis.Scores.Risk,
		string(analysis.Scores.Sentiment),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	r.logger.Debug().Str("run_id", analysis.RunID).Msg("Recorded analysis run")
	return nil
}

// RecentRuns returns the most recent run summaries, newest first
func (r *SQLiteRecorder) RecentRuns(ctx context.Context, limit int) ([]*models.RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT run_id, run_at, portfolio_name, holding_count, degraded_count,
		       total_value, diversification, risk, sentiment
		FROM runs
		ORDER BY run_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var summaries []*models.RunSummary
	for rows.Next() {
		var s models.RunSummary
		var runAt int64
		if err := rows.Scan(
			&s.RunID, &runAt, &s.PortfolioName, &s.HoldingCount, &s.DegradedCount,
			&s.TotalValue, &s.Diversification, &s.Risk, &s.Sentiment,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		s.RunAt = time.Unix(runAt, 0)
		summaries = append(summaries, &s)
	}

	return summaries, rows.Err()
}

// Close releases the database
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

// NoopRecorder discards runs; used when run history is disabled
type NoopRecorder struct{}

func (NoopRecorder) RecordRun(context.Context, *models.Analysis) error { return nil }
func (NoopRecorder) RecentRuns(context.Context, int) ([]*models.RunSummary, error) {
	return nil, nil
}
func (NoopRecorder) Close() error { return nil }
