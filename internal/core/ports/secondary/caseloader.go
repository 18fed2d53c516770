package secondary

import (
	"context"

	"gitlab.com/ppjudge.net/internal/domain"
)

// CaseLoader discovers and reads the ordered test cases of a problem.
// LoadCaseNames is deterministic: stable order by display order, ties broken
// by identifier. LoadCase reads one case at a time so a run can iterate
// lazily and restart from the name list.
type CaseLoader interface {
	LoadCaseNames(ctx context.Context, problemSet, problemID string) ([]string, error)
	LoadCase(ctx context.Context, problemSet, problemID, caseName string) (*domain.TestCase, error)
}

// ProblemCatalog lists the problems of a problem set
type ProblemCatalog interface {
	ListProblems(ctx context.Context, problemSet string) ([]*domain.Problem, error)
}
