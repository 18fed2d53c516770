package submissionlog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore is the artifact storage consumed by the submission log. Keys are
// slash-separated and sort lexicographically; the submission key scheme
// relies on that order matching chronological order.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns every key under prefix, in no particular order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// FSBlobStore stores artifacts as plain files under a root directory
type FSBlobStore struct {
	root string
}

var _ BlobStore = (*FSBlobStore)(nil)

// NewFSBlobStore creates a filesystem blob store rooted at root
func NewFSBlobStore(root string) (*FSBlobStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create submission directory %s: %w", root, err)
	}
	return &FSBlobStore{root: root}, nil
}

func (s *FSBlobStore) keyPath(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *FSBlobStore) Put(ctx context.Context, key string, data []byte) error {
	path := s.keyPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", key, err)
	}
	return nil
}

func (s *FSBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", key, err)
	}
	return data, nil
}

func (s *FSBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	start := s.keyPath(prefix)
	if _, err := os.Stat(start); os.IsNotExist(err) {
		return nil, nil
	}

	var keys []string
	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts under %s: %w", prefix, err)
	}

	// Stat races aside, every key must actually carry the prefix.
	filtered := keys[:0]
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			filtered = append(filtered, k)
		}
	}
	return filtered, nil
}
