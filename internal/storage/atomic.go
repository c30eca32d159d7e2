package storage

import (
	"fmt"
	"os"
)

// writeFileAtomic writes to a temp file next to path, then renames it over
// path so readers never see a partial file
func writeFileAtomic(path string, b []byte) error {
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, b, 0644); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp → %s: %w", path, err)
	}
	return nil
}
