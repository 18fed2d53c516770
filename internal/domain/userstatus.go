package domain

import "time"

// UserProblemStatus tracks one user's solved state for one problem within a
// problem set. Solved and SolvedAt are monotonic: once solved, the first-solve
// timestamp never changes. SubmissionCount grows on every submission and
// LastSubmissionID always points at the most recent one.
type UserProblemStatus struct {
	UserID           string     `json:"user_id"`
	ProblemID        string     `json:"problem_id"`
	ProblemSet       string     `json:"problem_set"`
	Solved           bool       `json:"solved"`
	SolvedAt         *time.Time `json:"solved_at,omitempty"`
	SubmissionCount  int        `json:"submission_count"`
	LastSubmissionID string     `json:"last_submission_id,omitempty"`
}

// NewUserProblemStatus returns the unsolved default for a triple that has no
// recorded submissions yet. The default is never persisted on read.
func NewUserProblemStatus(userID, problemID, problemSet string) *UserProblemStatus {
	return &UserProblemStatus{
		UserID:     userID,
		ProblemID:  problemID,
		ProblemSet: problemSet,
	}
}
