package config

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	apperrors "github.com/dmerejkowsky/qibuild/internal/errors"
	"github.com/dmerejkowsky/qibuild/internal/logger"
)

// lockTimeout is the maximum time Update waits for the file lock.
const lockTimeout = 1 * time.Second

// lockRetryDelay is how often Update retries a held lock.
const lockRetryDelay = 50 * time.Millisecond

// Read loads the file at path and parses it with SetContent. When the file
// cannot be read the store is still reset to an empty document, and an IO
// error wrapping the OS error is returned.
func (s *Store) Read(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		_ = s.SetContent("")
		return apperrors.Wrap(apperrors.ErrCodeIO, fmt.Sprintf("failed to read %s", path), err)
	}
	logger.Debug("read %d bytes from %s", len(data), path)
	return s.SetContent(string(data))
}

// Save replaces the file at path with String().
func (s *Store) Save(path string) error {
	content := s.String()
	if err := writeFile(path, []byte(content)); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, fmt.Sprintf("failed to write %s", path), err)
	}
	logger.Debug("wrote %d bytes to %s", len(content), path)
	return nil
}

// Load returns a store read from path. A missing file yields an empty store
// so that a new configuration can be built from scratch; any other read
// failure and any parse failure is returned.
func Load(path string) (*Store, error) {
	s := New()
	if err := s.Read(path); err != nil {
		if apperrors.Is(err, fs.ErrNotExist) {
			logger.Info("%s does not exist, starting from an empty configuration", path)
			return s, nil
		}
		return nil, err
	}
	return s, nil
}

// Update loads path under an exclusive file lock, applies fn, and saves the
// result. Nothing is written when loading or fn fails, so a corrupt file is
// never overwritten with an empty document.
func Update(ctx context.Context, path string, fn func(*Store) error) error {
	fileLock := flock.New(path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeLock, "failed to acquire lock", err)
	}
	if !locked {
		return apperrors.Wrap(apperrors.ErrCodeLock, fmt.Sprintf("failed to acquire lock: timeout after %v", lockTimeout), nil)
	}
	defer func() {
		if err := fileLock.Unlock(); err != nil {
			logger.LogError(err, "failed to release configuration lock")
		}
	}()

	s, err := Load(path)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return s.Save(path)
}
