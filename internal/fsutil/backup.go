package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BackupPath swaps the extension of path for suffix: "test1.nml" with
// ".nml~" becomes "test1.nml~", "CNTLATM" becomes "CNTLATM.nml~".
func BackupPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix
}

// ReplaceWithBackup moves path to its backup name and writes content in its
// place, keeping the original permission bits. The backup is overwritten if
// it already exists.
func ReplaceWithBackup(path, suffix string, content []byte) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	backup := BackupPath(path, suffix)
	if backup == path {
		return "", fmt.Errorf("backup of %s would overwrite the original", path)
	}
	if err := os.Rename(path, backup); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, info.Mode().Perm()); err != nil {
		return backup, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return backup, nil
}
