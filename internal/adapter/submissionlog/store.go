package submissionlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/ppjudge.net/internal/core/ports/primary"
	"gitlab.com/ppjudge.net/internal/core/ports/secondary"
	"gitlab.com/ppjudge.net/internal/domain"
	"gitlab.com/ppjudge.net/internal/static/errs"
)

const (
	codeSuffix   = "_code.py"
	resultSuffix = "_result.json"
	logSuffix    = "_log.json"

	// timestampFormat orders keys lexicographically equal to chronologically.
	// The listing code depends on this property.
	timestampFormat = "20060102150405"

	defaultListLimit = 10
)

// Store implements secondary.SubmissionStore over a BlobStore.
//
// Every submission produces three artifacts under one key prefix:
//
//	<set>/<problemId>/<YYYY>/<MM>/<DD>/<timestamp>_<submissionId>_code.py
//	.../<timestamp>_<submissionId>_result.json
//	.../<timestamp>_<submissionId>_log.json
//
// The log artifact references the result artifact, so a submission whose
// result write failed is never served as valid.
type Store struct {
	blobs  BlobStore
	logger primary.Logger
	now    func() time.Time
}

var _ secondary.SubmissionStore = (*Store)(nil)

// NewStore creates a submission store over the given artifact storage
func NewStore(blobs BlobStore, logger primary.Logger) *Store {
	return &Store{
		blobs:  blobs,
		logger: logger,
		now:    time.Now,
	}
}

// Record durably writes the source code, the full per-case results and the
// summary log of one completed run. All three writes must succeed; a failed
// write surfaces ErrDurableWrite and the submission counts as not recorded.
func (s *Store) Record(ctx context.Context, run *domain.JudgeRun) (*domain.SubmissionLog, error) {
	submissionID := uuid.New().String()
	now := s.now()
	prefix := fmt.Sprintf("%s/%s/%s/%s_%s",
		run.ProblemSet, run.ProblemID, now.Format("2006/01/02"), now.Format(timestampFormat), submissionID)

	result := &domain.SubmissionResult{
		ID:           uuid.New().String(),
		SubmissionID: submissionID,
		ProblemID:    run.ProblemID,
		ProblemSet:   run.ProblemSet,
		SubmittedAt:  now,
		Results:      run.Results,
	}

	log := &domain.SubmissionLog{
		ID:          submissionID,
		ProblemID:   run.ProblemID,
		ProblemSet:  run.ProblemSet,
		Code:        run.SourceCode,
		SubmittedAt: now,
		Status:      domain.Aggregate(run.Results),
		ResultRef:   prefix + resultSuffix,
	}

	if err := s.blobs.Put(ctx, prefix+codeSuffix, []byte(run.SourceCode)); err != nil {
		return nil, fmt.Errorf("%w: submission code: %v", errs.ErrDurableWrite, err)
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission result: %w", err)
	}
	if err := s.blobs.Put(ctx, prefix+resultSuffix, resultJSON); err != nil {
		return nil, fmt.Errorf("%w: submission result: %v", errs.ErrDurableWrite, err)
	}

	logJSON, err := json.Marshal(log)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission log: %w", err)
	}
	if err := s.blobs.Put(ctx, prefix+logSuffix, logJSON); err != nil {
		return nil, fmt.Errorf("%w: submission log: %v", errs.ErrDurableWrite, err)
	}

	s.logger.Info("Submission recorded",
		"submissionId", submissionID,
		"problemSet", run.ProblemSet,
		"problemId", run.ProblemID,
		"status", log.Status)

	return log, nil
}

// ListByProblem returns up to limit submission logs for a problem, newest
// first, by sorting artifact keys in reverse lexicographic order.
func (s *Store) ListByProblem(ctx context.Context, problemSet, problemID string, limit int) ([]*domain.SubmissionLog, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	keys, err := s.blobs.List(ctx, problemSet+"/"+problemID+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	logKeys := keys[:0]
	for _, k := range keys {
		if strings.HasSuffix(k, logSuffix) {
			logKeys = append(logKeys, k)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(logKeys)))

	if len(logKeys) > limit {
		logKeys = logKeys[:limit]
	}

	logs := make([]*domain.SubmissionLog, 0, len(logKeys))
	for _, key := range logKeys {
		log, err := s.readLog(ctx, key)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}

// GetDetails finds a submission by exact id with a full scan over stored
// logs, then loads its paired result artifact.
func (s *Store) GetDetails(ctx context.Context, submissionID string) (*domain.SubmissionLog, *domain.SubmissionResult, error) {
	keys, err := s.blobs.List(ctx, "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan submissions: %w", err)
	}

	for _, key := range keys {
		if !strings.HasSuffix(key, logSuffix) {
			continue
		}
		log, err := s.readLog(ctx, key)
		if err != nil {
			return nil, nil, err
		}
		if log.ID != submissionID {
			continue
		}

		data, err := s.blobs.Get(ctx, log.ResultRef)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				// The result write never landed; the record is partial
				// and must not be served.
				return nil, nil, fmt.Errorf("%w: %s", errs.ErrSubmissionNotFound, submissionID)
			}
			return nil, nil, fmt.Errorf("failed to read submission result: %w", err)
		}
		var result domain.SubmissionResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal submission result %s: %w", submissionID, err)
		}
		return log, &result, nil
	}

	return nil, nil, fmt.Errorf("%w: %s", errs.ErrSubmissionNotFound, submissionID)
}

func (s *Store) readLog(ctx context.Context, key string) (*domain.SubmissionLog, error) {
	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission log %s: %w", key, err)
	}
	var log domain.SubmissionLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submission log %s: %w", key, err)
	}
	return &log, nil
}
