// Package mcp exposes the coverage aggregation engine over the Model
// Context Protocol so an orchestrating agent can drive it directly.
package mcp

import (
	"context"

	"jacoscope/internal/application"
	"jacoscope/internal/domain"
	"jacoscope/internal/infrastructure/config"
)

// Service defines the application operations needed by the MCP surface.
// An interface keeps the handlers trivially mockable in tests.
type Service interface {
	Analyze(ctx context.Context, opts application.Options) domain.Summary
}

// Config holds MCP server configuration.
type Config struct {
	// Root is the default project root for tools that omit one.
	Root string
	// HistoryPath is where recorded summaries live.
	HistoryPath string
	// Settings carries the effective project configuration, exposed via
	// the config resource and used for locator defaults.
	Settings config.Config
}

// ReadCoverageInput mirrors the contract offered to the orchestrating
// agent: a project root plus optional comma-separated scope lists.
type ReadCoverageInput struct {
	ProjectRoot    string `json:"projectRoot,omitempty" jsonschema:"Path to the project directory"`
	TargetModules  string `json:"targetModules,omitempty" jsonschema:"Comma-separated module names to restrict report discovery"`
	TargetPackages string `json:"targetPackages,omitempty" jsonschema:"Comma-separated package prefixes to restrict per-class filtering"`
	TargetClasses  string `json:"targetClasses,omitempty" jsonschema:"Comma-separated simple or fully qualified class names"`
}

// RecordCoverageInput parameterizes the record_coverage tool.
type RecordCoverageInput struct {
	ProjectRoot string `json:"projectRoot,omitempty" jsonschema:"Path to the project directory"`
	Commit      string `json:"commit,omitempty" jsonschema:"Git commit SHA to tag the entry with"`
	Branch      string `json:"branch,omitempty" jsonschema:"Git branch name to tag the entry with"`
}

// SummaryOutput is the structured tool response consumed by the agent.
type SummaryOutput struct {
	Success        bool     `json:"success"`
	Error          string   `json:"error,omitempty"`
	LineCoverage   float64  `json:"lineCoverage"`
	BranchCoverage float64  `json:"branchCoverage"`
	WorstClasses   []string `json:"worstClasses,omitempty"`
}

func summaryOutput(s domain.Summary) SummaryOutput {
	return SummaryOutput{
		Success:        s.Success,
		Error:          s.Error,
		LineCoverage:   s.LineCoverage,
		BranchCoverage: s.BranchCoverage,
		WorstClasses:   s.WorstClasses,
	}
}

// coalesce returns value if non-empty, otherwise fallback.
func coalesce(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
