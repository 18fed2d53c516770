package domain

import "time"

// SubmissionLog is the immutable summary record of one submission.
// It is written once and never updated.
type SubmissionLog struct {
	ID          string    `json:"id"`
	ProblemID   string    `json:"problem_id"`
	ProblemSet  string    `json:"problem_set"`
	Code        string    `json:"code"`
	SubmittedAt time.Time `json:"submitted_at"`
	Status      Status    `json:"status"`
	ResultRef   string    `json:"result_ref"`
}

// SubmissionResult holds the full per-case verdicts of one submission.
// Paired 1:1 with a SubmissionLog through ResultRef.
type SubmissionResult struct {
	ID           string        `json:"id"`
	SubmissionID string        `json:"submission_id"`
	ProblemID    string        `json:"problem_id"`
	ProblemSet   string        `json:"problem_set"`
	SubmittedAt  time.Time     `json:"submitted_at"`
	Results      []CaseVerdict `json:"results"`
}
