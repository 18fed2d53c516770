package runstore

import (
	"context"
	"sync"

	"gitlab.com/ppjudge.net/internal/core/ports/secondary"
	"gitlab.com/ppjudge.net/internal/domain"
)

// MemoryCache is the in-process fast tier: a mutex-guarded map of run state.
// Stored runs are cloned on the way in and out so callers never share the
// cached slice.
type MemoryCache struct {
	mu   sync.RWMutex
	runs map[string]*domain.JudgeRun
}

var _ secondary.RunCache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		runs: map[string]*domain.JudgeRun{},
	}
}

func (c *MemoryCache) Get(ctx context.Context, runID string) (*domain.JudgeRun, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	run, ok := c.runs[runID]
	if !ok {
		return nil, false, nil
	}
	return run.Clone(), true, nil
}

func (c *MemoryCache) Set(ctx context.Context, run *domain.JudgeRun) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs[run.RunID] = run.Clone()
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, runID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.runs, runID)
	return nil
}
