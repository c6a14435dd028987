//go:build !windows

package config

import (
	"fmt"

	"github.com/google/renameio/v2"

	"github.com/dmerejkowsky/qibuild/internal/logger"
)

// writeFile replaces path atomically: the data is written to a temporary
// file in the same directory, synced, then renamed over path.
func writeFile(path string, data []byte) error {
	pendingFile, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug("cleanup pending file for %s: %v", path, err)
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace file: %w", err)
	}
	return nil
}
