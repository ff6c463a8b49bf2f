package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

var _ domain.ObjectStore = (*LocalStore)(nil)

// LocalStore writes and lists export files in a local directory. It backs
// tests and single-machine runs.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a store rooted at dir, creating it if necessary.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Put writes one file under the base directory.
func (s *LocalStore) Put(_ context.Context, name string, body io.Reader) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path) //nolint:gosec // name is generated by the exporter
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// List returns file names under the base directory starting with prefix.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
