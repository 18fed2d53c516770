package caseloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"gitlab.com/ppjudge.net/internal/core/ports/primary"
	"gitlab.com/ppjudge.net/internal/core/ports/secondary"
	"gitlab.com/ppjudge.net/internal/domain"
	"gitlab.com/ppjudge.net/internal/static/errs"
)

// FileCaseLoader reads test cases from problem storage on disk.
//
// Layout per problem:
//
//	<root>/<problemSet>/<problemId>/testcase.yaml        ordered case names
//	<root>/<problemSet>/<problemId>/testcases/in/<name>.txt
//	<root>/<problemSet>/<problemId>/testcases/out/<name>.txt
//
// Access is read-only; the loader never mutates problem storage.
type FileCaseLoader struct {
	root   string
	logger primary.Logger
}

var _ secondary.CaseLoader = (*FileCaseLoader)(nil)

// NewFileCaseLoader creates a case loader rooted at the problem directory
func NewFileCaseLoader(root string, logger primary.Logger) *FileCaseLoader {
	return &FileCaseLoader{
		root:   root,
		logger: logger,
	}
}

// LoadCaseNames returns the case names of a problem in judge order: stable by
// display order from testcase.yaml, ties broken by identifier. Integer
// entries in the yaml are zero-padded to two digits. A missing definition
// file or an empty list yields ErrCaseNotFound.
func (l *FileCaseLoader) LoadCaseNames(ctx context.Context, problemSet, problemID string) ([]string, error) {
	yamlPath := filepath.Join(l.root, problemSet, problemID, "testcase.yaml")

	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s/%s", errs.ErrCaseNotFound, problemSet, problemID)
		}
		return nil, fmt.Errorf("failed to read case definition %s: %w", yamlPath, err)
	}

	var entries []interface{}
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse case definition %s: %w", yamlPath, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", errs.ErrCaseNotFound, problemSet, problemID)
	}

	type orderedName struct {
		name  string
		order int
	}
	names := make([]orderedName, 0, len(entries))
	for i, entry := range entries {
		switch v := entry.(type) {
		case int:
			names = append(names, orderedName{name: fmt.Sprintf("%02d", v), order: i})
		case string:
			names = append(names, orderedName{name: v, order: i})
		default:
			return nil, fmt.Errorf("unsupported case name %v in %s", entry, yamlPath)
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		if names[i].order != names[j].order {
			return names[i].order < names[j].order
		}
		return names[i].name < names[j].name
	})

	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.name
	}
	return out, nil
}

// LoadCase reads one test case. The expected output file is optional; a
// problem may only check that the program runs.
func (l *FileCaseLoader) LoadCase(ctx context.Context, problemSet, problemID, caseName string) (*domain.TestCase, error) {
	caseDir := filepath.Join(l.root, problemSet, problemID, "testcases")
	inPath := filepath.Join(caseDir, "in", caseName+".txt")
	outPath := filepath.Join(caseDir, "out", caseName+".txt")

	stdin, err := os.ReadFile(inPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: input file for case %s", errs.ErrCaseNotFound, caseName)
		}
		return nil, fmt.Errorf("failed to read case input %s: %w", inPath, err)
	}

	var expected []byte
	expected, err = os.ReadFile(outPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read case output %s: %w", outPath, err)
		}
		l.logger.Warn("Expected output file missing", "problemSet", problemSet, "problemId", problemID, "case", caseName)
		expected = nil
	}

	return &domain.TestCase{
		ID:             caseName,
		Stdin:          string(stdin),
		ExpectedStdout: string(expected),
	}, nil
}
