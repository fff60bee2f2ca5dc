package domain

// Summary is the terminal result of one aggregation request. It is a
// tagged type: the success variant carries the metrics payload, the
// failure variant carries only the message. Constructed exactly once,
// never mutated afterwards.
type Summary struct {
	Success        bool     `json:"success"`
	Error          string   `json:"error,omitempty"`
	LineCoverage   float64  `json:"lineCoverage"`
	BranchCoverage float64  `json:"branchCoverage"`
	WorstClasses   []string `json:"worstClasses,omitempty"`
}

// NewSummary folds merged counters and class records into a success
// summary. Ratios are 0.0 when nothing was measured for the metric; the
// ranked class list is truncated to WorstClassLimit entries.
func NewSummary(line, branch Counter, records []ClassCoverage) Summary {
	return Summary{
		Success:        true,
		LineCoverage:   line.Ratio(),
		BranchCoverage: branch.Ratio(),
		WorstClasses:   RankWorst(records, WorstClassLimit),
	}
}

// FailedSummary builds the failure variant. Discovery failures and
// total parse failures surface this way; errors never cross the
// component boundary as panics or raw error values.
func FailedSummary(msg string) Summary {
	return Summary{Success: false, Error: msg}
}
