package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"jacoscope/internal/application"
	"jacoscope/internal/domain"
	"jacoscope/internal/infrastructure/history"
)

// handleReadCoverage implements the read_coverage_report tool.
func (s *Server) handleReadCoverage(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ReadCoverageInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	summary := s.svc.Analyze(ctx, application.Options{
		Root:            coalesce(input.ProjectRoot, s.config.Root),
		Modules:         input.TargetModules,
		Packages:        input.TargetPackages,
		Classes:         input.TargetClasses,
		ExcludePatterns: s.config.Settings.Exclude,
		Workers:         s.config.Settings.Workers,
	})

	// Failures are part of the structured output, never a protocol error.
	return nil, summaryOutput(summary), nil
}

// handleRecordCoverage runs an aggregation and appends it to history.
func (s *Server) handleRecordCoverage(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input RecordCoverageInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	summary := s.svc.Analyze(ctx, application.Options{
		Root:            coalesce(input.ProjectRoot, s.config.Root),
		ExcludePatterns: s.config.Settings.Exclude,
		Workers:         s.config.Settings.Workers,
	})

	out := summaryOutput(summary)
	if !summary.Success {
		return nil, out, nil
	}

	store := &history.FileStore{Path: s.config.HistoryPath}
	err := store.Append(domain.HistoryEntry{
		Timestamp:      time.Now().UTC(),
		Commit:         input.Commit,
		Branch:         input.Branch,
		LineCoverage:   summary.LineCoverage,
		BranchCoverage: summary.BranchCoverage,
	})
	if err != nil {
		out.Success = false
		out.Error = "recording coverage: " + err.Error()
	}
	return nil, out, nil
}
