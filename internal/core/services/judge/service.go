package judge

import (
	"context"

	"gitlab.com/ppjudge.net/internal/domain"
)

// SubmitRequest carries one user submission to judge
type SubmitRequest struct {
	UserID     string
	ProblemID  string
	ProblemSet string
	SourceCode string
}

// Outcome is the result of a completed judge run
type Outcome struct {
	RunID      string
	Submission *domain.SubmissionLog
	Results    []domain.CaseVerdict
	UserStatus *domain.UserProblemStatus
}

// IJudgeService drives judge runs and exposes their persisted state
type IJudgeService interface {
	// Submit judges a submission against every test case of the problem,
	// persists the run, records the submission and updates the user's
	// solved state.
	Submit(ctx context.Context, req *SubmitRequest) (*Outcome, error)

	// GetRun retrieves the current state of a judge run
	GetRun(ctx context.Context, runID string) (*domain.JudgeRun, error)

	// ListSubmissions returns recent submissions for a problem, newest first
	ListSubmissions(ctx context.Context, problemSet, problemID string, limit int) ([]*domain.SubmissionLog, error)

	// GetSubmissionDetails retrieves one submission with its full results
	GetSubmissionDetails(ctx context.Context, submissionID string) (*domain.SubmissionLog, *domain.SubmissionResult, error)

	// GetUserStatus retrieves a user's solved state for one problem
	GetUserStatus(ctx context.Context, userID, problemSet, problemID string) (*domain.UserProblemStatus, error)

	// ListProblems lists the problem catalog of a problem set
	ListProblems(ctx context.Context, problemSet string) ([]*domain.Problem, error)
}
