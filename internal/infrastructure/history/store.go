// Package history persists recorded coverage summaries between runs so
// callers can compare an aggregation against the previous iteration.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"jacoscope/internal/domain"
)

// DefaultMaxEntries caps the history file size.
const DefaultMaxEntries = 100

// FileStore keeps the history as one JSON file on disk.
type FileStore struct {
	Path       string
	MaxEntries int
}

// Locking lives in lock_unix.go / lock_windows.go.

// Load reads the recorded history. A missing file is an empty history,
// not an error.
func (s *FileStore) Load() (domain.History, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.History{}, nil
		}
		return domain.History{}, err
	}

	var h domain.History
	if err := json.Unmarshal(data, &h); err != nil {
		return domain.History{}, fmt.Errorf("decode history %s: %w", s.Path, err)
	}
	return h, nil
}

// Save writes the full history to disk.
func (s *FileStore) Save(h domain.History) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o600)
}

// Append records one entry, trimming the oldest entries beyond the cap.
// An exclusive file lock guards against concurrent recorders, e.g. two
// agent iterations finishing at once.
func (s *FileStore) Append(entry domain.HistoryEntry) error {
	lock, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer lock.release()

	h, err := s.Load()
	if err != nil {
		return err
	}

	h.Entries = append(h.Entries, entry)

	limit := s.MaxEntries
	if limit == 0 {
		limit = DefaultMaxEntries
	}
	if len(h.Entries) > limit {
		h.Entries = h.Entries[len(h.Entries)-limit:]
	}

	return s.Save(h)
}
