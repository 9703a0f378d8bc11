package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mmgblabel-png/bigharvestfarming/internal/concurrency"
	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
)

// FileStore keeps each profile in <dir>/<profile>.json
type FileStore struct {
	dir   string
	locks *concurrency.LockManager
}

// NewFileStore creates dir if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpen, err)
	}
	return &FileStore{dir: dir, locks: concurrency.NewLockManager()}, nil
}

// Path returns the file backing profile
func (s *FileStore) Path(profile string) string {
	return filepath.Join(s.dir, profile+FileExtension)
}

// Load reads the profile's document
func (s *FileStore) Load(_ context.Context, profile string) (doc string, err error) {
	defer func() { record(DriverFile, OperationLoad, err) }()

	data, err := os.ReadFile(s.Path(profile))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profile)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToLoad, err)
	}
	return string(data), nil
}

// Save replaces the profile's document. The write goes to a temp file that
// is renamed into place, so readers never see a partial document. Writers to
// the same profile are serialized.
func (s *FileStore) Save(_ context.Context, profile, document string) (err error) {
	defer func() { record(DriverFile, OperationSave, err) }()

	unlock := s.locks.Lock(profile)
	defer unlock()

	tmp, err := os.CreateTemp(s.dir, profile+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSave, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(document); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", ErrMsgFailedToSave, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSave, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(profile)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSave, err)
	}
	return nil
}

// Ping checks that the saves directory is still there
func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

// Close is a no-op
func (s *FileStore) Close() error {
	return nil
}
