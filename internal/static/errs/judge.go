package errs

import "errors"

var (
	// ErrCaseNotFound is returned when a problem/problem-set pair has no
	// test cases.
	ErrCaseNotFound = errors.New("no test cases found for problem")

	// ErrRunNotFound is returned for operations on an unknown run id.
	ErrRunNotFound = errors.New("judge run not found")

	// ErrSubmissionNotFound is returned when no stored submission matches
	// the requested id.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrDurableWrite is returned when the durable storage tier fails.
	// Writes are never retried automatically by this subsystem.
	ErrDurableWrite = errors.New("durable write failed")

	// ErrExecutorFailure marks an execution-infrastructure fault, as
	// opposed to a compile or runtime error of the submitted program.
	ErrExecutorFailure = errors.New("code executor failure")
)
