package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is set at build time.
var Version = "dev"

// Server wraps the application service with MCP protocol handling.
type Server struct {
	svc    Service
	config Config
}

// New creates an MCP server wrapping the given service.
func New(svc Service, cfg Config) *Server {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = cfg.Settings.HistoryPath
	}
	return &Server{svc: svc, config: cfg}
}

// Run starts the server on STDIO and blocks until the context is
// canceled.
func (s *Server) Run(ctx context.Context) error {
	transport := &mcp.StdioTransport{}
	if err := s.build().Run(ctx, transport); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}

// build assembles the protocol server with all tools and resources
// registered. Tool and resource capabilities are advertised automatically
// by the SDK once handlers are added.
func (s *Server) build() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "jacoscope",
			Version: Version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
		},
	)

	s.registerTools(server)
	s.registerResources(server)
	return server
}

func (s *Server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_coverage_report",
		Description: "Parse JaCoCo XML reports and return aggregate line/branch coverage plus the worst-covered classes. Honors a Report Path directive in TESTING_STANDARDS.md and module/package/class scope filters.",
	}, s.handleReadCoverage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_coverage",
		Description: "Run coverage aggregation and append the result to history so later runs can report the percentage-point delta.",
	}, s.handleRecordCoverage)
}

func (s *Server) registerResources(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		URI:         "jacoscope://trend",
		Name:        "Coverage Trend",
		Description: "Recorded coverage history with per-entry deltas",
		MIMEType:    "application/json",
	}, s.handleTrendResource)

	server.AddResource(&mcp.Resource{
		URI:         "jacoscope://config",
		Name:        "Effective Configuration",
		Description: "The report discovery and filtering settings in effect",
		MIMEType:    "application/json",
	}, s.handleConfigResource)
}
