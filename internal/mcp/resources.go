package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"jacoscope/internal/infrastructure/history"
)

// handleTrendResource returns the recorded history with per-entry deltas.
func (s *Server) handleTrendResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	store := &history.FileStore{Path: s.config.HistoryPath}

	h, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load coverage history: %w", err)
	}

	data, err := json.MarshalIndent(h.Trend(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trend: %w", err)
	}

	return jsonResource(req.Params.URI, data), nil
}

// handleConfigResource exposes the effective settings.
func (s *Server) handleConfigResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(s.config.Settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

func jsonResource(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}
