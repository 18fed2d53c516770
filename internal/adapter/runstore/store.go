package runstore

import (
	"context"
	"fmt"
	"sync"

	"gitlab.com/ppjudge.net/internal/core/ports/primary"
	"gitlab.com/ppjudge.net/internal/core/ports/secondary"
	"gitlab.com/ppjudge.net/internal/domain"
	"gitlab.com/ppjudge.net/internal/static/errs"
)

// TwoTierStore implements secondary.RunStore over a fast cache tier and a
// durable backend tier.
//
// Write path: cache first, then the durable backend. A backend failure is
// returned as ErrDurableWrite after the cache write, so the tiers can be
// transiently inconsistent until the caller retries. Read path: cache first,
// backend on a miss, repopulating the cache on a durable hit.
type TwoTierStore struct {
	cache   secondary.RunCache
	backend secondary.RunBackend
	logger  primary.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ secondary.RunStore = (*TwoTierStore)(nil)

// NewTwoTierStore creates a run store over the given tiers
func NewTwoTierStore(cache secondary.RunCache, backend secondary.RunBackend, logger primary.Logger) *TwoTierStore {
	return &TwoTierStore{
		cache:   cache,
		backend: backend,
		logger:  logger,
		locks:   map[string]*sync.Mutex{},
	}
}

// runLock returns the mutex serializing read-modify-write cycles for one run.
// Runs are keyed per run id, so there is no cross-run contention.
func (s *TwoTierStore) runLock(runID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[runID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[runID] = lock
	}
	return lock
}

// Create stores a new run in both tiers
func (s *TwoTierStore) Create(ctx context.Context, run *domain.JudgeRun) error {
	lock := s.runLock(run.RunID)
	lock.Lock()
	defer lock.Unlock()

	return s.writeThrough(ctx, run.Clone())
}

// Get retrieves a run, falling back to the durable tier on a cache miss
func (s *TwoTierStore) Get(ctx context.Context, runID string) (*domain.JudgeRun, error) {
	run, err := s.load(ctx, runID)
	if err != nil {
		return nil, err
	}
	return run.Clone(), nil
}

// AppendCaseResult appends one case verdict to a running run
func (s *TwoTierStore) AppendCaseResult(ctx context.Context, runID string, verdict domain.CaseVerdict) error {
	lock := s.runLock(runID)
	lock.Lock()
	defer lock.Unlock()

	run, err := s.load(ctx, runID)
	if err != nil {
		return err
	}

	run = run.Clone()
	run.Results = append(run.Results, verdict)
	return s.writeThrough(ctx, run)
}

// Finalize marks a run completed. Idempotent: an already-completed run is
// left untouched.
func (s *TwoTierStore) Finalize(ctx context.Context, runID string) error {
	lock := s.runLock(runID)
	lock.Lock()
	defer lock.Unlock()

	run, err := s.load(ctx, runID)
	if err != nil {
		return err
	}
	if run.Status == domain.RunStatusCompleted {
		return nil
	}

	run = run.Clone()
	run.Status = domain.RunStatusCompleted
	return s.writeThrough(ctx, run)
}

// Exists reports whether either tier knows the run id
func (s *TwoTierStore) Exists(ctx context.Context, runID string) (bool, error) {
	if _, ok, err := s.cache.Get(ctx, runID); err == nil && ok {
		return true, nil
	}
	return s.backend.Exists(ctx, runID)
}

func (s *TwoTierStore) load(ctx context.Context, runID string) (*domain.JudgeRun, error) {
	run, ok, err := s.cache.Get(ctx, runID)
	if err != nil {
		s.logger.Warn("Run cache read failed, falling back to durable tier", "runId", runID, "error", err)
	} else if ok {
		return run, nil
	}

	run, err = s.backend.Load(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	if run == nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrRunNotFound, runID)
	}

	if err := s.cache.Set(ctx, run); err != nil {
		s.logger.Warn("Failed to repopulate run cache", "runId", runID, "error", err)
	}
	return run, nil
}

func (s *TwoTierStore) writeThrough(ctx context.Context, run *domain.JudgeRun) error {
	if err := s.cache.Set(ctx, run); err != nil {
		return fmt.Errorf("run cache write for %s: %w", run.RunID, err)
	}
	if err := s.backend.Save(ctx, run); err != nil {
		s.logger.Error("Durable run write failed", "runId", run.RunID, "error", err)
		return fmt.Errorf("%w: run %s: %v", errs.ErrDurableWrite, run.RunID, err)
	}
	return nil
}
