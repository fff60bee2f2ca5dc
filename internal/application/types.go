package application

import (
	"errors"

	"jacoscope/internal/domain"
)

// OutputFormat selects how a summary is rendered.
type OutputFormat string

const (
	OutputText     OutputFormat = "text"
	OutputJSON     OutputFormat = "json"
	OutputMarkdown OutputFormat = "markdown"
)

// Sentinel errors for the two user-visible failure classes. They never
// leave the service as raw errors; Analyze folds them into a failure
// summary with a descriptive message.
var (
	ErrNoReports        = errors.New("no coverage reports found")
	ErrAllReportsFailed = errors.New("all coverage reports failed to parse")
)

// Options describes one aggregation request as received from the
// orchestrating caller. The scope lists are comma-separated strings;
// parsing them into sets is the service's job.
type Options struct {
	Root     string
	Modules  string
	Packages string
	Classes  string

	// ExcludePatterns are additional exclusion regexps from config,
	// layered on top of the built-in noise patterns.
	ExcludePatterns []string

	// Workers bounds the parse worker pool. Zero means one worker per
	// available CPU.
	Workers int
}

// FileResult is the outcome of parsing a single report file. It is owned
// by the worker that produced it until the final merge; workers share no
// mutable state.
type FileResult struct {
	Line    domain.Counter
	Branch  domain.Counter
	Classes []domain.ClassCoverage
}

// ReportLocator finds the report files relevant to a query.
type ReportLocator interface {
	// Locate returns an ordered, de-duplicated list of report paths.
	// An empty list is not an error here; the caller decides how to
	// surface it.
	Locate(root string, query domain.ScopeQuery) ([]string, error)
}

// ReportParser parses one report file under a scope query.
type ReportParser interface {
	Parse(path string, query domain.ScopeQuery) (FileResult, error)
}
