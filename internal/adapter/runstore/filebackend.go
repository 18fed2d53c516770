package runstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gitlab.com/ppjudge.net/internal/core/ports/secondary"
	"gitlab.com/ppjudge.net/internal/domain"
)

// FileBackend is the durable tier backed by one JSON file per run
type FileBackend struct {
	baseDir string
}

var _ secondary.RunBackend = (*FileBackend)(nil)

// NewFileBackend creates a file backend rooted at baseDir, creating the
// directory if needed.
func NewFileBackend(baseDir string) (*FileBackend, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run store directory %s: %w", baseDir, err)
	}
	return &FileBackend{baseDir: baseDir}, nil
}

func (b *FileBackend) filePath(runID string) string {
	return filepath.Join(b.baseDir, fmt.Sprintf("judge_%s.json", runID))
}

func (b *FileBackend) Save(ctx context.Context, run *domain.JudgeRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run %s: %w", run.RunID, err)
	}
	if err := os.WriteFile(b.filePath(run.RunID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}
	return nil
}

func (b *FileBackend) Load(ctx context.Context, runID string) (*domain.JudgeRun, error) {
	data, err := os.ReadFile(b.filePath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read run record: %w", err)
	}
	var run domain.JudgeRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run record %s: %w", runID, err)
	}
	return &run, nil
}

func (b *FileBackend) Exists(ctx context.Context, runID string) (bool, error) {
	_, err := os.Stat(b.filePath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
