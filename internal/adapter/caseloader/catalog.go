package caseloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gitlab.com/ppjudge.net/internal/domain"
)

// ListProblems reads the problems.yaml catalog of a problem set
func (l *FileCaseLoader) ListProblems(ctx context.Context, problemSet string) ([]*domain.Problem, error) {
	yamlPath := filepath.Join(l.root, problemSet, "problems.yaml")

	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem catalog %s: %w", yamlPath, err)
	}

	var rows []struct {
		ID    string `yaml:"id"`
		Title string `yaml:"title"`
		Level int    `yaml:"level"`
	}
	if err := yaml.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse problem catalog %s: %w", yamlPath, err)
	}

	problems := make([]*domain.Problem, 0, len(rows))
	for _, row := range rows {
		level := row.Level
		if level == 0 {
			level = 1
		}
		problems = append(problems, &domain.Problem{
			ID:    row.ID,
			Title: row.Title,
			Level: level,
		})
	}
	return problems, nil
}
