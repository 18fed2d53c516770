package secondary

import "context"

// ExecutionRequest describes one program execution against one stdin
type ExecutionRequest struct {
	SourceCode  string
	Language    string
	Stdin       string
	TimeLimitMs int64
}

// ExecutionResult is the captured outcome of one execution. TimedOut is the
// executor's own timeout classification; callers must rely on it rather than
// inferring a timeout from TimeUsedMs.
type ExecutionResult struct {
	Stdout       string
	TimeUsedMs   int64
	MemoryUsedKB int64
	CompileError string
	RuntimeError string
	TimedOut     bool
}

// CodeExecutor runs a program in isolation with a hard per-case time limit.
// A non-nil error means the execution infrastructure itself failed, not the
// submitted program.
type CodeExecutor interface {
	Execute(ctx context.Context, req *ExecutionRequest) (*ExecutionResult, error)
}
