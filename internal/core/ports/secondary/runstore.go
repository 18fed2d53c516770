package secondary

import (
	"context"

	"gitlab.com/ppjudge.net/internal/domain"
)

// RunStore persists judge-run state, keyed by run id.
//
// Implementations are dual-tier: writes land in a fast in-process tier first
// and are mirrored to a durable tier before the call returns. A durable-write
// failure is surfaced to the caller; the tiers may stay inconsistent until
// the caller retries — there is no atomic dual-write guarantee.
type RunStore interface {
	Create(ctx context.Context, run *domain.JudgeRun) error
	Get(ctx context.Context, runID string) (*domain.JudgeRun, error)
	AppendCaseResult(ctx context.Context, runID string, verdict domain.CaseVerdict) error
	// Finalize marks a run completed. Finalizing an already-completed run
	// is a no-op, not an error.
	Finalize(ctx context.Context, runID string) error
	Exists(ctx context.Context, runID string) (bool, error)
}

// RunCache is the fast tier of the run store
type RunCache interface {
	Get(ctx context.Context, runID string) (*domain.JudgeRun, bool, error)
	Set(ctx context.Context, run *domain.JudgeRun) error
	Delete(ctx context.Context, runID string) error
}

// RunBackend is the durable tier of the run store. Load returns nil with no
// error when the run is not recorded.
type RunBackend interface {
	Save(ctx context.Context, run *domain.JudgeRun) error
	Load(ctx context.Context, runID string) (*domain.JudgeRun, error)
	Exists(ctx context.Context, runID string) (bool, error)
}
