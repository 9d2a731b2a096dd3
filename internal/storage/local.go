package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalStorage writes report artifacts under a base directory on the
// local filesystem. This is the backend of record: a failed write here is
// fatal to the run.
type LocalStorage struct {
	baseDir string
}

// Ensure LocalStorage implements StorageInterface
var _ StorageInterface = (*LocalStorage)(nil)

// NewLocalStorage creates the base directory if needed.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", baseDir, err)
	}

	return &LocalStorage{baseDir: baseDir}, nil
}

// Store writes the file, creating intermediate directories. An existing
// file at the same path is overwritten (same-day reruns replace the
// earlier report).
func (s *LocalStorage) Store(filename string, data []byte) error {
	path := filepath.Join(s.baseDir, filename)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filename, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	logrus.Infof("Report written to %s", path)
	return nil
}

// Retrieve reads a previously stored file.
func (s *LocalStorage) Retrieve(filename string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return data, nil
}

// List returns stored filenames (relative to the base directory) with the
// given prefix.
func (s *LocalStorage) List(prefix string) ([]string, error) {
	var names []string

	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if strings.HasPrefix(rel, prefix) {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files under %s: %w", s.baseDir, err)
	}

	return names, nil
}

// Delete removes a stored file.
func (s *LocalStorage) Delete(filename string) error {
	if err := os.Remove(filepath.Join(s.baseDir, filename)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", filename, err)
	}
	return nil
}
