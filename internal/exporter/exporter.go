// Package exporter writes export documents to paths chosen by an
// external save dialog.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile atomically writes content to path: tmp file → fsync →
// rename. The parent directory is created if missing.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("exporter: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".chrononotes-tmp-*")
	if err != nil {
		return fmt.Errorf("exporter: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("exporter: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("exporter: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("exporter: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("exporter: rename: %w", err)
	}
	success = true
	return nil
}
