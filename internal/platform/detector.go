// Package platform locates the per-user files the qibuild tools share.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigFileName is the name of the user configuration file.
const ConfigFileName = "qibuild.xml"

// Paths contains the per-user locations of the qibuild tools.
type Paths struct {
	ConfigDir  string // directory shared by the qi tools
	UserConfig string // the user's qibuild.xml
}

// DetectPaths returns the paths for the current user. Every platform uses
// ~/.config/qi, so a configuration can be copied between machines as is.
func DetectPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot locate home directory on %s: %w", Platform(), err)
	}
	return pathsUnder(home), nil
}

func pathsUnder(home string) *Paths {
	dir := filepath.Join(home, ".config", "qi")
	return &Paths{
		ConfigDir:  dir,
		UserConfig: filepath.Join(dir, ConfigFileName),
	}
}

// Exists reports whether the user configuration file exists.
func (p *Paths) Exists() bool {
	return pathExists(p.UserConfig)
}

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
