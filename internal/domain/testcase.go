package domain

// TestCase represents a single (input, expected output) pair of a problem.
// Immutable once loaded; the source of truth is external problem storage,
// this subsystem never persists test cases.
type TestCase struct {
	ID             string
	DisplayOrder   int
	Stdin          string
	ExpectedStdout string
}
