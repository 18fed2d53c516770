package judge

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/ppjudge.net/internal/core/ports/primary"
	"gitlab.com/ppjudge.net/internal/core/ports/secondary"
	"gitlab.com/ppjudge.net/internal/domain"
)

var _ IJudgeService = (*JudgeService)(nil)

// JudgeService implements the judge orchestration: it loads the ordered test
// cases, judges them one by one through the code executor, persists the run
// incrementally and finalizes it into the submission log and the user's
// solved state.
type JudgeService struct {
	loader      secondary.CaseLoader
	catalog     secondary.ProblemCatalog
	executor    secondary.CodeExecutor
	runStore    secondary.RunStore
	submissions secondary.SubmissionStore
	userStatus  secondary.UserStatusStore
	logger      primary.Logger

	timeLimitMs int64
	language    string
}

// NewJudgeService creates a judge service
func NewJudgeService(
	loader secondary.CaseLoader,
	catalog secondary.ProblemCatalog,
	executor secondary.CodeExecutor,
	runStore secondary.RunStore,
	submissions secondary.SubmissionStore,
	userStatus secondary.UserStatusStore,
	logger primary.Logger,
	timeLimitMs int64,
	language string,
) *JudgeService {
	return &JudgeService{
		loader:      loader,
		catalog:     catalog,
		executor:    executor,
		runStore:    runStore,
		submissions: submissions,
		userStatus:  userStatus,
		logger:      logger,
		timeLimitMs: timeLimitMs,
		language:    language,
	}
}

// Submit drives one judge run end to end. Cases are judged strictly in
// loader order and every verdict is appended to the run store before the
// next case starts, so partial results are observable in order.
func (s *JudgeService) Submit(ctx context.Context, req *SubmitRequest) (*Outcome, error) {
	caseNames, err := s.loader.LoadCaseNames(ctx, req.ProblemSet, req.ProblemID)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	s.logger.Info("Starting judge run",
		"runId", runID,
		"userId", req.UserID,
		"problemSet", req.ProblemSet,
		"problemId", req.ProblemID,
		"cases", len(caseNames))

	run := domain.NewJudgeRun(runID, req.ProblemID, req.ProblemSet, req.SourceCode)
	if err := s.runStore.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	for i, name := range caseNames {
		verdict := s.judgeCase(ctx, req.SourceCode, req.ProblemSet, req.ProblemID, name, i)
		if err := s.runStore.AppendCaseResult(ctx, runID, verdict); err != nil {
			return nil, fmt.Errorf("failed to append case result: %w", err)
		}
	}

	if err := s.runStore.Finalize(ctx, runID); err != nil {
		return nil, fmt.Errorf("failed to finalize run: %w", err)
	}

	run, err = s.runStore.Get(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back run: %w", err)
	}

	log, err := s.submissions.Record(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	status, err := s.userStatus.UpdateOnSubmission(ctx, req.UserID, log.ID, req.ProblemSet, req.ProblemID, run.Results)
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	s.logger.Info("Judge run completed",
		"runId", runID,
		"submissionId", log.ID,
		"status", log.Status)

	return &Outcome{
		RunID:      runID,
		Submission: log,
		Results:    run.Results,
		UserStatus: status,
	}, nil
}

// judgeCase produces the verdict of one test case. A loader or executor
// infrastructure fault is surfaced as IE, never folded into WA.
func (s *JudgeService) judgeCase(ctx context.Context, sourceCode, problemSet, problemID, caseName string, displayOrder int) domain.CaseVerdict {
	testCase, err := s.loader.LoadCase(ctx, problemSet, problemID, caseName)
	if err != nil {
		s.logger.Error("Failed to load test case", "case", caseName, "error", err)
		return domain.CaseVerdict{
			CaseID:       caseName,
			Status:       domain.StatusInternalError,
			RuntimeError: err.Error(),
		}
	}
	testCase.DisplayOrder = displayOrder

	result, err := s.executor.Execute(ctx, &secondary.ExecutionRequest{
		SourceCode:  sourceCode,
		Language:    s.language,
		Stdin:       testCase.Stdin,
		TimeLimitMs: s.timeLimitMs,
	})
	if err != nil {
		s.logger.Error("Executor failure", "case", caseName, "error", err)
		return domain.CaseVerdict{
			CaseID:       caseName,
			Status:       domain.StatusInternalError,
			RuntimeError: err.Error(),
		}
	}

	verdict := domain.CaseVerdict{
		CaseID:       testCase.ID,
		Output:       result.Stdout,
		RuntimeError: result.RuntimeError,
		CompileError: result.CompileError,
		TimeUsedMs:   result.TimeUsedMs,
		MemoryUsedKB: result.MemoryUsedKB,
	}

	switch {
	case result.CompileError != "":
		verdict.Status = domain.StatusCompileError
		verdict.Output = ""
	case result.TimedOut:
		verdict.Status = domain.StatusTimeLimitExceeded
	case result.RuntimeError != "":
		verdict.Status = domain.StatusRuntimeError
	case strings.TrimSpace(result.Stdout) == strings.TrimSpace(testCase.ExpectedStdout):
		verdict.Status = domain.StatusAccepted
	default:
		verdict.Status = domain.StatusWrongAnswer
	}
	return verdict
}

// GetRun retrieves the current state of a judge run
func (s *JudgeService) GetRun(ctx context.Context, runID string) (*domain.JudgeRun, error) {
	return s.runStore.Get(ctx, runID)
}

// ListSubmissions returns recent submissions for a problem, newest first
func (s *JudgeService) ListSubmissions(ctx context.Context, problemSet, problemID string, limit int) ([]*domain.SubmissionLog, error) {
	return s.submissions.ListByProblem(ctx, problemSet, problemID, limit)
}

// GetSubmissionDetails retrieves one submission with its full results
func (s *JudgeService) GetSubmissionDetails(ctx context.Context, submissionID string) (*domain.SubmissionLog, *domain.SubmissionResult, error) {
	return s.submissions.GetDetails(ctx, submissionID)
}

// GetUserStatus retrieves a user's solved state for one problem
func (s *JudgeService) GetUserStatus(ctx context.Context, userID, problemSet, problemID string) (*domain.UserProblemStatus, error) {
	return s.userStatus.GetStatus(ctx, userID, problemSet, problemID)
}

// ListProblems lists the problem catalog of a problem set
func (s *JudgeService) ListProblems(ctx context.Context, problemSet string) ([]*domain.Problem, error) {
	return s.catalog.ListProblems(ctx, problemSet)
}
