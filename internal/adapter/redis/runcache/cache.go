package runcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/ppjudge.net/internal/core/ports/primary"
	"gitlab.com/ppjudge.net/internal/core/ports/secondary"
	"gitlab.com/ppjudge.net/internal/domain"
)

const (
	runKeyPrefix  = "judge:run:"
	runExpiration = 30 * time.Minute
)

// RunCache implements the fast tier of the run store with Redis, for
// deployments where judge traffic is spread over several processes and the
// in-process map would fragment.
type RunCache struct {
	redisClient *redis.Client
	logger      primary.Logger
}

var _ secondary.RunCache = (*RunCache)(nil)

// NewRunCache creates a Redis-backed run cache
func NewRunCache(redisClient *redis.Client, logger primary.Logger) *RunCache {
	return &RunCache{
		redisClient: redisClient,
		logger:      logger,
	}
}

func runKey(runID string) string {
	return fmt.Sprintf("%s%s", runKeyPrefix, runID)
}

// Get retrieves a cached run. A missing key is a cache miss, not an error.
func (c *RunCache) Get(ctx context.Context, runID string) (*domain.JudgeRun, bool, error) {
	data, err := c.redisClient.Get(ctx, runKey(runID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached run: %w", err)
	}

	var run domain.JudgeRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached run %s: %w", runID, err)
	}
	return &run, true, nil
}

// Set caches a run with an expiration; the durable tier remains the source
// of truth after eviction.
func (c *RunCache) Set(ctx context.Context, run *domain.JudgeRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run %s: %w", run.RunID, err)
	}
	if err := c.redisClient.Set(ctx, runKey(run.RunID), data, runExpiration).Err(); err != nil {
		c.logger.Error("Failed to cache run", "runId", run.RunID, "error", err)
		return fmt.Errorf("failed to cache run: %w", err)
	}
	return nil
}

func (c *RunCache) Delete(ctx context.Context, runID string) error {
	if err := c.redisClient.Del(ctx, runKey(runID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cached run: %w", err)
	}
	return nil
}
