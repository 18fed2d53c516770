package userstatus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gitlab.com/ppjudge.net/internal/core/ports/primary"
	"gitlab.com/ppjudge.net/internal/core/ports/secondary"
	"gitlab.com/ppjudge.net/internal/domain"
	"gitlab.com/ppjudge.net/internal/static/errs"
)

// FileStore keeps each user's solved state in one JSON file, indexed by
// "<problemSet>_<problemId>". Updates are read-modify-write cycles, so every
// user is guarded by their own mutex: concurrent submissions by the same user
// serialize instead of losing updates.
type FileStore struct {
	baseDir string
	logger  primary.Logger
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ secondary.UserStatusStore = (*FileStore)(nil)

// NewFileStore creates a user status store rooted at baseDir
func NewFileStore(baseDir string, logger primary.Logger) (*FileStore, error) {
	dir := filepath.Join(baseDir, "user_status")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create user status directory %s: %w", dir, err)
	}
	return &FileStore{
		baseDir: dir,
		logger:  logger,
		now:     time.Now,
		locks:   map[string]*sync.Mutex{},
	}, nil
}

func statusKey(problemSet, problemID string) string {
	return fmt.Sprintf("%s_%s", problemSet, problemID)
}

func (s *FileStore) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

func (s *FileStore) statusFile(userID string) string {
	return filepath.Join(s.baseDir, userID+".json")
}

func (s *FileStore) loadAll(userID string) (map[string]*domain.UserProblemStatus, error) {
	data, err := os.ReadFile(s.statusFile(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*domain.UserProblemStatus{}, nil
		}
		return nil, fmt.Errorf("failed to read user status for %s: %w", userID, err)
	}
	statuses := map[string]*domain.UserProblemStatus{}
	if err := json.Unmarshal(data, &statuses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user status for %s: %w", userID, err)
	}
	return statuses, nil
}

func (s *FileStore) saveAll(userID string, statuses map[string]*domain.UserProblemStatus) error {
	data, err := json.Marshal(statuses)
	if err != nil {
		return fmt.Errorf("failed to marshal user status for %s: %w", userID, err)
	}
	if err := os.WriteFile(s.statusFile(userID), data, 0o644); err != nil {
		return fmt.Errorf("%w: user status for %s: %v", errs.ErrDurableWrite, userID, err)
	}
	return nil
}

// GetStatus returns the recorded status of a (user, problemSet, problem)
// triple, or a fresh unsolved default that is not persisted.
func (s *FileStore) GetStatus(ctx context.Context, userID, problemSet, problemID string) (*domain.UserProblemStatus, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	statuses, err := s.loadAll(userID)
	if err != nil {
		return nil, err
	}

	status, ok := statuses[statusKey(problemSet, problemID)]
	if !ok {
		return domain.NewUserProblemStatus(userID, problemID, problemSet), nil
	}
	return status, nil
}

// UpdateOnSubmission applies one submission to the user's record: the
// submission count increments and the last submission id updates on every
// call, and the first all-AC submission marks the problem solved with a
// permanent first-solve timestamp.
func (s *FileStore) UpdateOnSubmission(ctx context.Context, userID, submissionID, problemSet, problemID string, results []domain.CaseVerdict) (*domain.UserProblemStatus, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	statuses, err := s.loadAll(userID)
	if err != nil {
		return nil, err
	}

	key := statusKey(problemSet, problemID)
	status, ok := statuses[key]
	if !ok {
		status = domain.NewUserProblemStatus(userID, problemID, problemSet)
	}

	status.SubmissionCount++
	status.LastSubmissionID = submissionID

	if !status.Solved && domain.AllAccepted(results) {
		solvedAt := s.now()
		status.Solved = true
		status.SolvedAt = &solvedAt
		s.logger.Info("Problem solved",
			"userId", userID,
			"problemSet", problemSet,
			"problemId", problemID,
			"submissionId", submissionID)
	}

	statuses[key] = status
	if err := s.saveAll(userID, statuses); err != nil {
		return nil, err
	}
	return status, nil
}
