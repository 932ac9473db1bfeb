package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Compile-time check that LocalStore implements Store.
var _ Store = (*LocalStore)(nil)

// LocalStore implements the Store interface using local disk.
// Each key is kept in its own file inside a configurable directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a new LocalStore instance.
// If dir is empty, a joblisting directory under os.TempDir() is used.
// The directory is created if it doesn't exist.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "joblisting")
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &LocalStore{dir: dir}, nil
}

// Dir returns the data directory path.
func (s *LocalStore) Dir() string {
	return s.dir
}

// path maps a key to its file. Keys are path-escaped so they can never
// leave the data directory.
func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

// Get reads the file stored for key.
func (s *LocalStore) Get(ctx context.Context, key string) (string, error) {
	if err := checkCall(ctx, key); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), nil
}

// Put writes value to a temporary file and renames it over the key's file,
// so readers see either the old or the new value and never a partial write.
func (s *LocalStore) Put(ctx context.Context, key, value string) error {
	if err := checkCall(ctx, key); err != nil {
		return err
	}

	f, err := os.CreateTemp(s.dir, ".put_*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := f.Name()
	if _, err := f.WriteString(value); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Delete removes the file stored for key.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if err := checkCall(ctx, key); err != nil {
		return err
	}

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
