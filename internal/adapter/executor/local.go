package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"gitlab.com/ppjudge.net/internal/core/ports/primary"
	"gitlab.com/ppjudge.net/internal/core/ports/secondary"
	"gitlab.com/ppjudge.net/internal/static/errs"
)

// interpreters maps a request language to the interpreter binary
var interpreters = map[string]string{
	"python":  "python3",
	"python3": "python3",
}

// LocalExecutor runs submitted programs as local subprocesses with a hard
// context deadline per case. It is a development-grade stand-in for a real
// sandbox: no namespace or memory isolation, only the time limit is enforced.
type LocalExecutor struct {
	logger primary.Logger
}

var _ secondary.CodeExecutor = (*LocalExecutor)(nil)

// NewLocalExecutor creates a subprocess-backed code executor
func NewLocalExecutor(logger primary.Logger) *LocalExecutor {
	return &LocalExecutor{logger: logger}
}

// Execute runs the program once against the given stdin. A deadline hit is
// reported through TimedOut; a non-zero exit lands in RuntimeError. A non-nil
// error means the execution infrastructure itself failed.
func (e *LocalExecutor) Execute(ctx context.Context, req *secondary.ExecutionRequest) (*secondary.ExecutionResult, error) {
	interpreter, ok := interpreters[req.Language]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported language %q", errs.ErrExecutorFailure, req.Language)
	}

	tmp, err := os.CreateTemp("", "submission_*.py")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file: %v", errs.ErrExecutorFailure, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(req.SourceCode); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: write temp file: %v", errs.ErrExecutorFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: close temp file: %v", errs.ErrExecutorFailure, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(req.TimeLimitMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(runCtx, interpreter, tmp.Name())
	cmd.Stdin = strings.NewReader(req.Stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start).Milliseconds()

	result := &secondary.ExecutionResult{
		Stdout:     stdout.String(),
		TimeUsedMs: elapsed,
	}
	if state := cmd.ProcessState; state != nil {
		if ru, ok := state.SysUsage().(*syscall.Rusage); ok {
			result.MemoryUsedKB = ru.Maxrss
		}
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.TimeUsedMs = req.TimeLimitMs
		result.RuntimeError = "Time Limit Exceeded"
		return result, nil
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.RuntimeError = stderr.String()
			if result.RuntimeError == "" {
				result.RuntimeError = runErr.Error()
			}
			return result, nil
		}
		// Not a program failure: the interpreter could not be started.
		return nil, fmt.Errorf("%w: %v", errs.ErrExecutorFailure, runErr)
	}

	return result, nil
}
