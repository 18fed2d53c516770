package caseloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/ppjudge.net/internal/static/errs"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

// writeProblem lays out one problem on disk in the storage format
func writeProblem(t *testing.T, root, set, id, caseYaml string, cases map[string][2]string) {
	t.Helper()
	dir := filepath.Join(root, set, id)
	for _, sub := range []string{"testcases/in", "testcases/out"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "testcase.yaml"), []byte(caseYaml), 0o644); err != nil {
		t.Fatalf("write testcase.yaml: %v", err)
	}
	for name, inOut := range cases {
		if err := os.WriteFile(filepath.Join(dir, "testcases", "in", name+".txt"), []byte(inOut[0]), 0o644); err != nil {
			t.Fatalf("write input: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "testcases", "out", name+".txt"), []byte(inOut[1]), 0o644); err != nil {
			t.Fatalf("write output: %v", err)
		}
	}
}

func TestLoadCaseNamesOrderAndPadding(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeProblem(t, root, "s", "001", "- 1\n- 2\n- edge_empty\n", map[string][2]string{
		"01":         {"", "ok\n"},
		"02":         {"3 4\n", "7\n"},
		"edge_empty": {"", ""},
	})
	loader := NewFileCaseLoader(root, nopLogger{})

	names, err := loader.LoadCaseNames(context.Background(), "s", "001")
	if err != nil {
		t.Fatalf("LoadCaseNames: %v", err)
	}
	want := []string{"01", "02", "edge_empty"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestLoadCaseNamesRestartable(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeProblem(t, root, "s", "001", "- 1\n- 2\n", map[string][2]string{
		"01": {"", ""},
		"02": {"", ""},
	})
	loader := NewFileCaseLoader(root, nopLogger{})
	ctx := context.Background()

	first, err := loader.LoadCaseNames(ctx, "s", "001")
	if err != nil {
		t.Fatalf("LoadCaseNames: %v", err)
	}
	second, err := loader.LoadCaseNames(ctx, "s", "001")
	if err != nil {
		t.Fatalf("second LoadCaseNames: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("sequence not restartable: %v then %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("order changed between loads: %v vs %v", first, second)
		}
	}
}

func TestLoadCaseNamesMissingProblem(t *testing.T) {
	t.Parallel()
	loader := NewFileCaseLoader(t.TempDir(), nopLogger{})

	_, err := loader.LoadCaseNames(context.Background(), "s", "missing")
	if !errors.Is(err, errs.ErrCaseNotFound) {
		t.Errorf("LoadCaseNames = %v, want ErrCaseNotFound", err)
	}
}

func TestLoadCaseNamesEmptyDefinition(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeProblem(t, root, "s", "001", "[]\n", nil)
	loader := NewFileCaseLoader(root, nopLogger{})

	_, err := loader.LoadCaseNames(context.Background(), "s", "001")
	if !errors.Is(err, errs.ErrCaseNotFound) {
		t.Errorf("LoadCaseNames on empty list = %v, want ErrCaseNotFound", err)
	}
}

func TestLoadCase(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeProblem(t, root, "s", "001", "- 1\n", map[string][2]string{
		"01": {"5 7\n", "12\n"},
	})
	loader := NewFileCaseLoader(root, nopLogger{})

	tc, err := loader.LoadCase(context.Background(), "s", "001", "01")
	if err != nil {
		t.Fatalf("LoadCase: %v", err)
	}
	if tc.ID != "01" || tc.Stdin != "5 7\n" || tc.ExpectedStdout != "12\n" {
		t.Errorf("unexpected case: %+v", tc)
	}
}

func TestLoadCaseMissingInput(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeProblem(t, root, "s", "001", "- 1\n", nil)
	loader := NewFileCaseLoader(root, nopLogger{})

	_, err := loader.LoadCase(context.Background(), "s", "001", "01")
	if !errors.Is(err, errs.ErrCaseNotFound) {
		t.Errorf("LoadCase without input file = %v, want ErrCaseNotFound", err)
	}
}

func TestLoadCaseMissingOutputIsEmpty(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeProblem(t, root, "s", "001", "- 1\n", nil)
	inPath := filepath.Join(root, "s", "001", "testcases", "in", "01.txt")
	if err := os.WriteFile(inPath, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	loader := NewFileCaseLoader(root, nopLogger{})

	tc, err := loader.LoadCase(context.Background(), "s", "001", "01")
	if err != nil {
		t.Fatalf("LoadCase: %v", err)
	}
	if tc.ExpectedStdout != "" {
		t.Errorf("ExpectedStdout = %q, want empty", tc.ExpectedStdout)
	}
}

func TestListProblems(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "s"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	catalog := "- id: \"001\"\n  title: Hello World\n  level: 1\n- id: \"002\"\n  title: Addition\n"
	if err := os.WriteFile(filepath.Join(root, "s", "problems.yaml"), []byte(catalog), 0o644); err != nil {
		t.Fatalf("write problems.yaml: %v", err)
	}
	loader := NewFileCaseLoader(root, nopLogger{})

	problems, err := loader.ListProblems(context.Background(), "s")
	if err != nil {
		t.Fatalf("ListProblems: %v", err)
	}
	if len(problems) != 2 {
		t.Fatalf("got %d problems, want 2", len(problems))
	}
	if problems[0].ID != "001" || problems[0].Title != "Hello World" {
		t.Errorf("unexpected first problem: %+v", problems[0])
	}
	if problems[1].Level != 1 {
		t.Errorf("missing level should default to 1, got %d", problems[1].Level)
	}
}
