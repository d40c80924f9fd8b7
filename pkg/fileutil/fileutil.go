// Package fileutil provides small filesystem predicates and path checks
// shared by the rule loader, the generator, and the MCP server.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ValidateAbsolutePath cleans path and verifies it is absolute. Callers
// use it before file operations on paths taken from flags or the
// environment, so `..` segments cannot escape an intended root.
func ValidateAbsolutePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path cannot be empty")
	}

	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		return "", fmt.Errorf("path must be absolute, got: %s", path)
	}

	return cleanPath, nil
}

// FileExists reports whether path exists and is a regular file, not a
// directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
