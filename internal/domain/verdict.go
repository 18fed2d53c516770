package domain

// Status represents the verdict of a judged test case
type Status string

const (
	StatusAccepted            Status = "AC"
	StatusWrongAnswer         Status = "WA"
	StatusTimeLimitExceeded   Status = "TLE"
	StatusMemoryLimitExceeded Status = "MLE"
	StatusRuntimeError        Status = "RE"
	StatusCompileError        Status = "CE"
	StatusInternalError       Status = "IE"
	StatusPresentationError   Status = "PE"
)

// statusRank is the total order used to merge per-case verdicts into an
// overall verdict. A status not present in the table never wins the merge.
var statusRank = map[Status]int{
	StatusRuntimeError:      5,
	StatusTimeLimitExceeded: 4,
	StatusCompileError:      3,
	StatusWrongAnswer:       2,
	StatusAccepted:          1,
}

// Rank returns the merge priority of a status, 0 for unranked statuses.
func (s Status) Rank() int {
	return statusRank[s]
}

// CaseVerdict represents the outcome of judging one test case.
// It is immutable once created.
type CaseVerdict struct {
	CaseID       string `json:"case_id"`
	Status       Status `json:"status"`
	Output       string `json:"output,omitempty"`
	RuntimeError string `json:"runtime_error,omitempty"`
	CompileError string `json:"compile_error,omitempty"`
	TimeUsedMs   int64  `json:"time_used_ms"`
	MemoryUsedKB int64  `json:"memory_used_kb,omitempty"`
}

// Aggregate reduces a sequence of per-case verdicts to one overall status.
// The highest-ranked status wins regardless of position, so any permutation
// of the same verdicts yields the same result. An empty sequence is AC.
func Aggregate(results []CaseVerdict) Status {
	overall := StatusAccepted
	highest := 0
	for _, r := range results {
		if rank := r.Status.Rank(); rank > highest {
			highest = rank
			overall = r.Status
		}
	}
	return overall
}

// AllAccepted reports whether every verdict in results is AC.
// It is false for an empty sequence.
func AllAccepted(results []CaseVerdict) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if r.Status != StatusAccepted {
			return false
		}
	}
	return true
}
