package domain

// RunStatus represents the lifecycle state of a judge run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
)

// JudgeRun represents one execution of a submitted program against all test
// cases of a problem. A run is created as running with no results, grows by
// appending case verdicts in display order, and completes exactly once.
type JudgeRun struct {
	RunID      string        `json:"run_id"`
	ProblemID  string        `json:"problem_id"`
	ProblemSet string        `json:"problem_set"`
	SourceCode string        `json:"source_code"`
	Status     RunStatus     `json:"status"`
	Results    []CaseVerdict `json:"results"`
}

// NewJudgeRun creates a run in the running state with empty results
func NewJudgeRun(runID, problemID, problemSet, sourceCode string) *JudgeRun {
	return &JudgeRun{
		RunID:      runID,
		ProblemID:  problemID,
		ProblemSet: problemSet,
		SourceCode: sourceCode,
		Status:     RunStatusRunning,
		Results:    []CaseVerdict{},
	}
}

// Clone returns a deep copy so callers can hand out run state without
// exposing the stored slice to mutation.
func (r *JudgeRun) Clone() *JudgeRun {
	cp := *r
	cp.Results = make([]CaseVerdict, len(r.Results))
	copy(cp.Results, r.Results)
	return &cp
}
