package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// FileStore keeps rendered decks as files in one directory
type FileStore struct {
	dir string
}

// NewFileStore creates the output directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("artifact directory cannot be empty")
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating artifact directory %s: %w", dir, err)
	}

	return &FileStore{dir: filepath.Clean(dir)}, nil
}

// Dir returns the output directory
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes data as <id>.<ext> and returns the file path
func (s *FileStore) Save(ctx context.Context, id, ext string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateName(id); err != nil {
		return "", fmt.Errorf("invalid artifact id: %w", err)
	}
	if err := validateName(ext); err != nil {
		return "", fmt.Errorf("invalid artifact extension: %w", err)
	}

	path := filepath.Join(s.dir, id+"."+ext)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("writing artifact: %w", err)
	}

	return path, nil
}

// Remove deletes an artifact previously returned by Save. Missing files are not an error.
func (s *FileStore) Remove(path string) error {
	clean := filepath.Clean(path)
	if filepath.Dir(clean) != s.dir {
		return fmt.Errorf("artifact %s is outside %s", path, s.dir)
	}

	if err := os.Remove(clean); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing artifact: %w", err)
	}
	return nil
}

// CleanupStale removes artifacts older than maxAge and returns how many were removed
func (s *FileStore) CleanupStale(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("reading artifact directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) <= maxAge {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("removing stale artifact %s: %w", entry.Name(), err)
		}
		removed++
	}

	return removed, nil
}

func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("name contains path characters: %s", name)
	}
	return nil
}

var _ ports.ArtifactStore = (*FileStore)(nil)
