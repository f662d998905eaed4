// Package filex holds small filesystem helpers for exported files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir, resolved against the working directory when
// relative, and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// WriteFile writes data to name, creating its parent directory first.
func WriteFile(name string, data []byte, perm os.FileMode) error {
	if _, err := EnsureDir(filepath.Dir(name)); err != nil {
		return err
	}
	if err := os.WriteFile(name, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
