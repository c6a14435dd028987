package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/dmerejkowsky/qibuild/internal/config"
	"github.com/dmerejkowsky/qibuild/internal/executor"
	"github.com/dmerejkowsky/qibuild/internal/input"
	"github.com/dmerejkowsky/qibuild/internal/platform"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	Store            ConfigStore
	PlatformDetector PlatformDetector
	Executor         executor.CommandExecutor
	StdinReader      input.Reader
}

// ConfigStore loads and updates configuration files
type ConfigStore interface {
	// Load reads the file at path; a missing file yields an empty store
	Load(path string) (*config.Store, error)

	// Update loads path under a lock, applies fn and saves the result
	Update(ctx context.Context, path string, fn func(*config.Store) error) error

	// Exists reports whether a file is present at path
	Exists(path string) (bool, error)
}

// PlatformDetector locates the per-user qibuild files
type PlatformDetector interface {
	DetectPaths() (*platform.Paths, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	Store:            &fileConfigStore{},
	PlatformDetector: &realPlatformDetector{},
	Executor:         executor.NewSystemExecutor(),
	StdinReader:      input.NewStdinReader(),
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

// fileConfigStore works on the real file system
type fileConfigStore struct{}

func (s *fileConfigStore) Load(path string) (*config.Store, error) {
	return config.Load(path)
}

func (s *fileConfigStore) Update(ctx context.Context, path string, fn func(*config.Store) error) error {
	return config.Update(ctx, path, fn)
}

func (s *fileConfigStore) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

type realPlatformDetector struct{}

func (r *realPlatformDetector) DetectPaths() (*platform.Paths, error) {
	return platform.DetectPaths()
}
