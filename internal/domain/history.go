package domain

import "time"

// HistoryEntry is one recorded aggregation result. Entries let the
// orchestrating agent compare the current run against the previous
// iteration and compute the percentage-point delta it achieved.
type HistoryEntry struct {
	Timestamp      time.Time `json:"timestamp"`
	Commit         string    `json:"commit,omitempty"`
	Branch         string    `json:"branch,omitempty"`
	LineCoverage   float64   `json:"lineCoverage"`
	BranchCoverage float64   `json:"branchCoverage"`
}

// History is an ordered series of recorded coverage summaries.
type History struct {
	Entries []HistoryEntry `json:"entries"`
}

// TrendPoint is a history entry annotated with its delta from the
// preceding entry, in coverage-ratio points.
type TrendPoint struct {
	HistoryEntry
	LineDelta   float64 `json:"lineDelta"`
	BranchDelta float64 `json:"branchDelta"`
}

// Trend computes per-entry deltas. The first entry has zero deltas.
func (h History) Trend() []TrendPoint {
	points := make([]TrendPoint, len(h.Entries))
	for i, e := range h.Entries {
		points[i] = TrendPoint{HistoryEntry: e}
		if i > 0 {
			prev := h.Entries[i-1]
			points[i].LineDelta = e.LineCoverage - prev.LineCoverage
			points[i].BranchDelta = e.BranchCoverage - prev.BranchCoverage
		}
	}
	return points
}

// Last returns the most recent entry, if any.
func (h History) Last() (HistoryEntry, bool) {
	if len(h.Entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.Entries[len(h.Entries)-1], true
}
