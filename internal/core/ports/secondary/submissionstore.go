package secondary

import (
	"context"

	"gitlab.com/ppjudge.net/internal/domain"
)

// SubmissionStore is the append-only durable record of every submission.
// Record writes three artifacts (source code, full result, summary log) under
// one key; if any write fails the submission is not recorded and partial
// artifacts must not be trusted by later reads.
type SubmissionStore interface {
	Record(ctx context.Context, run *domain.JudgeRun) (*domain.SubmissionLog, error)
	// ListByProblem returns up to limit logs for a problem, newest first.
	ListByProblem(ctx context.Context, problemSet, problemID string, limit int) ([]*domain.SubmissionLog, error)
	GetDetails(ctx context.Context, submissionID string) (*domain.SubmissionLog, *domain.SubmissionResult, error)
}

// UserStatusStore keeps each user's per-problem solved state.
// GetStatus returns a fresh unsolved default when no record exists and does
// not persist it. UpdateOnSubmission serializes concurrent updates per user.
type UserStatusStore interface {
	GetStatus(ctx context.Context, userID, problemSet, problemID string) (*domain.UserProblemStatus, error)
	UpdateOnSubmission(ctx context.Context, userID, submissionID, problemSet, problemID string, results []domain.CaseVerdict) (*domain.UserProblemStatus, error)
}
