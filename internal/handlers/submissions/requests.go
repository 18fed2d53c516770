package submissions

import "gitlab.com/ppjudge.net/internal/domain"

// SubmitRequest represents a request to judge a submission
type SubmitRequest struct {
	UserID     string `json:"user_id"`
	ProblemID  string `json:"problem_id"`
	ProblemSet string `json:"problem_set"`
	Code       string `json:"code"`
}

// SubmitResponse carries the outcome of a synchronously judged submission
type SubmitResponse struct {
	RunID        string               `json:"run_id"`
	SubmissionID string               `json:"submission_id"`
	Status       domain.Status        `json:"status"`
	Results      []domain.CaseVerdict `json:"results"`
	Solved       bool                 `json:"solved"`
}
