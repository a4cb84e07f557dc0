//go:build integration

package itest

import (
	"fmt"
	"os"
	"path/filepath"
)

// findRepoRoot walks up from the working directory to the module root,
// where the local whisper.cpp cache lives by convention.
func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod above %s", dir)
		}
		dir = parent
	}
}
