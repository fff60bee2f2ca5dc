// Package cli wires the jacoscope commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"jacoscope/internal/application"
	"jacoscope/internal/domain"
	"jacoscope/internal/infrastructure/badge"
	"jacoscope/internal/infrastructure/config"
	"jacoscope/internal/infrastructure/history"
	"jacoscope/internal/infrastructure/jacoco"
	"jacoscope/internal/infrastructure/locator"
	"jacoscope/internal/infrastructure/report"
	"jacoscope/internal/infrastructure/wizard"
	"jacoscope/internal/mcp"
)

// initWizard is swappable in tests.
var initWizard = wizard.Run

type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	logger     *zap.Logger
}

// NewRootCommand builds the jacoscope command tree.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "jacoscope",
		Short: "Scope-aware JaCoCo coverage aggregation",
		Long: `jacoscope locates JaCoCo XML reports in a multi-module source tree,
streams them with bounded memory, applies module/package/class scope
filters, and reports aggregate line/branch coverage plus the
worst-covered classes.

It honors a "Report Path:" directive in TESTING_STANDARDS.md and can run
as an MCP server for test-writing agents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zcfg := zap.NewProductionConfig()
			if a.verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "Config file path")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.newAnalyzeCommand(),
		a.newTrendCommand(),
		a.newInitCommand(),
		a.newMCPCommand(),
		a.newVersionCommand(),
	)
	return root
}

// buildService assembles the aggregation pipeline from config.
func (a *app) buildService(cfg config.Config) *application.Service {
	f := locator.New()
	if cfg.ReportName != "" {
		f.ReportName = cfg.ReportName
	}
	if cfg.ModuleReport != "" {
		f.ModuleReport = cfg.ModuleReport
	}
	if len(cfg.RootReports) > 0 {
		f.RootReports = cfg.RootReports
	}
	if cfg.StandardsFile != "" {
		f.StandardsFile = cfg.StandardsFile
	}
	return application.NewService(f, jacoco.New(), a.logger)
}

func (a *app) loadConfig() (config.Config, error) {
	return config.Loader{}.LoadOrDefault(a.configPath)
}

func (a *app) newAnalyzeCommand() *cobra.Command {
	var (
		root      string
		modules   string
		packages  string
		classes   string
		output    string
		badgePath string
		record    bool
		commit    string
		branch    string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Aggregate coverage for a project tree",
		Example: `  # Whole-tree aggregate
  jacoscope analyze --root ./my-service

  # Restrict discovery to two modules and filtering to one package
  jacoscope analyze --root . --modules mod-a,mod-b --packages com.example.billing

  # Machine-readable output, recorded to history
  jacoscope analyze -o json --record --commit $(git rev-parse HEAD)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			svc := a.buildService(cfg)
			summary := svc.Analyze(cmd.Context(), application.Options{
				Root:            root,
				Modules:         modules,
				Packages:        packages,
				Classes:         classes,
				ExcludePatterns: cfg.Exclude,
				Workers:         cfg.Workers,
			})

			if err := (report.Writer{}).Write(a.stdout, summary, application.OutputFormat(output)); err != nil {
				return err
			}

			if badgePath != "" {
				if err := a.writeBadge(badgePath, summary); err != nil {
					return err
				}
			}

			if !summary.Success {
				return errors.New(summary.Error)
			}

			if record {
				store := &history.FileStore{Path: cfg.HistoryPath}
				entry := domain.HistoryEntry{
					Timestamp:      time.Now().UTC(),
					Commit:         commit,
					Branch:         branch,
					LineCoverage:   summary.LineCoverage,
					BranchCoverage: summary.BranchCoverage,
				}
				if err := store.Append(entry); err != nil {
					return fmt.Errorf("recording coverage: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Project root to analyze")
	cmd.Flags().StringVar(&modules, "modules", "", "Comma-separated module names (steers report discovery)")
	cmd.Flags().StringVar(&packages, "packages", "", "Comma-separated package prefixes to include")
	cmd.Flags().StringVar(&classes, "classes", "", "Comma-separated simple or fully qualified class names to include")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or markdown")
	cmd.Flags().StringVar(&badgePath, "badge", "", "Write an SVG coverage badge to this path")
	cmd.Flags().BoolVar(&record, "record", false, "Append the result to coverage history")
	cmd.Flags().StringVar(&commit, "commit", "", "Git commit SHA to tag the history entry with")
	cmd.Flags().StringVar(&branch, "branch", "", "Git branch to tag the history entry with")
	return cmd
}

func (a *app) writeBadge(path string, summary domain.Summary) error {
	file, err := os.Create(path) // #nosec G304 - user-supplied flag
	if err != nil {
		return fmt.Errorf("create badge: %w", err)
	}
	defer file.Close()
	return badge.Write(file, summary)
}

func (a *app) newTrendCommand() *cobra.Command {
	var historyPath string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show recorded coverage history with deltas",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			path := historyPath
			if path == "" {
				path = cfg.HistoryPath
			}

			h, err := (&history.FileStore{Path: path}).Load()
			if err != nil {
				return err
			}
			if len(h.Entries) == 0 {
				_, err := fmt.Fprintln(a.stdout, "No coverage history recorded yet.")
				return err
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "When\tCommit\tLine\tDelta\tBranch\tDelta")
			for _, p := range h.Trend() {
				commit := p.Commit
				if commit == "" {
					commit = "-"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%.1f%%\t%+.1f\t%.1f%%\t%+.1f\n",
					p.Timestamp.Format("2006-01-02 15:04"),
					commit,
					p.LineCoverage*100, p.LineDelta*100,
					p.BranchCoverage*100, p.BranchDelta*100)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&historyPath, "history", "", "History file path (defaults to the configured one)")
	return cmd
}

func (a *app) newInitCommand() *cobra.Command {
	var (
		force         bool
		noInteractive bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .jacoscope.yaml config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()

			if !noInteractive {
				confirmed := false
				var err error
				cfg, confirmed, err = initWizard(cfg, a.stdout, cmd.InOrStdin())
				if err != nil {
					return err
				}
				if !confirmed {
					_, _ = fmt.Fprintln(a.stdout, "Aborted; no config written.")
					return nil
				}
			}

			return a.writeConfigFile(cfg, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Skip the interactive wizard and write defaults")
	return cmd
}

func (a *app) writeConfigFile(cfg config.Config, force bool) error {
	if exists, err := (config.Loader{}).Exists(a.configPath); err != nil {
		return err
	} else if exists && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
	}

	file, err := os.Create(a.configPath) // #nosec G304 - user-supplied flag
	if err != nil {
		return err
	}
	defer file.Close()

	if err := config.Write(file, cfg); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "Wrote %s\n", a.configPath)
	return err
}

func (a *app) newMCPCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run as an MCP server on stdio",
		Long: `Exposes read_coverage_report and record_coverage tools plus trend and
config resources over the Model Context Protocol, for use by test-writing
agents.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			server := mcp.New(a.buildService(cfg), mcp.Config{
				Root:        root,
				HistoryPath: cfg.HistoryPath,
				Settings:    cfg,
			})
			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Default project root for tool calls that omit one")
	return cmd
}

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(a.stdout, "jacoscope %s (commit %s, built %s)\n", Version, Commit, Date)
			return err
		},
	}
}
