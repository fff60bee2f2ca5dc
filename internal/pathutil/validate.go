// Package pathutil provides utilities for safe path handling.
package pathutil

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyPath is returned for an empty path.
	ErrEmptyPath = errors.New("path is empty")
	// ErrNullBytes is returned when a path contains NUL bytes.
	ErrNullBytes = errors.New("path contains null bytes")
)

// ValidatePath cleans a path and rejects obviously hostile inputs before
// it is handed to os.Open. Symlinks are resolved when the target exists so
// a report path from a standards document cannot escape via a link.
func ValidatePath(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	cleaned := filepath.Clean(path)
	if strings.Contains(cleaned, "\x00") {
		return "", ErrNullBytes
	}

	// EvalSymlinks fails for paths that do not exist yet; in that case
	// the cleaned path is still usable for a later existence probe.
	realPath, err := filepath.EvalSymlinks(cleaned)
	if err != nil {
		return cleaned, nil
	}
	return realPath, nil
}
