// package runbackend contains the PostgreSQL durable tier of the run store
package runbackend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gitlab.com/ppjudge.net/internal/core/ports/primary"
	"gitlab.com/ppjudge.net/internal/core/ports/secondary"
	"gitlab.com/ppjudge.net/internal/domain"
)

// RunBackend implements the durable run tier with PostgreSQL.
//
// Schema:
//
//	CREATE TABLE judge_runs (
//	    run_id     TEXT PRIMARY KEY,
//	    record     JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
type RunBackend struct {
	db     *sqlx.DB
	logger primary.Logger
}

var _ secondary.RunBackend = (*RunBackend)(nil)

// NewRunBackend creates a PostgreSQL run backend
func NewRunBackend(db *sqlx.DB, logger primary.Logger) *RunBackend {
	return &RunBackend{
		db:     db,
		logger: logger,
	}
}

// Save upserts the full run record as one JSONB row
func (r *RunBackend) Save(ctx context.Context, run *domain.JudgeRun) error {
	record, err := json.Marshal(run)
	if err != nil {
		r.logger.Error("Failed to marshal run record", "runId", run.RunID, "error", err)
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	query := `
		INSERT INTO judge_runs (run_id, record, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (run_id) DO UPDATE SET
			record = EXCLUDED.record,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, run.RunID, record, time.Now()); err != nil {
		r.logger.Error("Failed to save run record", "runId", run.RunID, "error", err)
		return fmt.Errorf("failed to save run record: %w", err)
	}
	return nil
}

// Load reads a run record by id, returning nil when no row exists
func (r *RunBackend) Load(ctx context.Context, runID string) (*domain.JudgeRun, error) {
	var record []byte
	query := `SELECT record FROM judge_runs WHERE run_id = $1`

	if err := r.db.GetContext(ctx, &record, query, runID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to load run record", "runId", runID, "error", err)
		return nil, fmt.Errorf("failed to load run record: %w", err)
	}

	var run domain.JudgeRun
	if err := json.Unmarshal(record, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run record %s: %w", runID, err)
	}
	return &run, nil
}

// Exists reports whether a run row is recorded
func (r *RunBackend) Exists(ctx context.Context, runID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM judge_runs WHERE run_id = $1)`

	if err := r.db.GetContext(ctx, &exists, query, runID); err != nil {
		return false, fmt.Errorf("failed to check run record: %w", err)
	}
	return exists, nil
}
