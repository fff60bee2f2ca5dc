package application

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jacoscope/internal/domain"
)

// Service drives the aggregation pipeline: locate reports, fan out one
// parse per file on a bounded worker pool, merge single-threaded.
type Service struct {
	Locator ReportLocator
	Parser  ReportParser
	Log     *zap.Logger
}

// NewService wires a service. A nil logger is replaced with a no-op one
// so callers and tests never have to care.
func NewService(locator ReportLocator, parser ReportParser, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Locator: locator, Parser: parser, Log: log}
}

// Analyze produces one summary for the given request. Failures are always
// returned as the summary's failure variant, never as a panic or an error
// value crossing the boundary:
//   - no report file under any discovery tier -> failure naming the root;
//   - every located file failing to parse -> failure;
//   - some files failing -> logged and skipped, summary computed from the
//     rest.
func (s *Service) Analyze(ctx context.Context, opts Options) domain.Summary {
	query := domain.NewScopeQuery(opts.Modules, opts.Packages, opts.Classes)
	query, err := query.WithExcludePatterns(opts.ExcludePatterns)
	if err != nil {
		return domain.FailedSummary(err.Error())
	}

	files, err := s.Locator.Locate(opts.Root, query)
	if err != nil {
		return domain.FailedSummary(fmt.Sprintf("locating coverage reports under %s: %v", opts.Root, err))
	}
	if len(files) == 0 {
		return domain.FailedSummary(fmt.Sprintf("%v under %s: checked the standards document, module and root report paths, and a recursive search", ErrNoReports, opts.Root))
	}

	results := s.parseAll(ctx, files, query, opts.Workers)

	var line, branch domain.Counter
	var classes []domain.ClassCoverage
	parsed := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		parsed++
		line = line.Add(res.Line)
		branch = branch.Add(res.Branch)
		classes = append(classes, res.Classes...)
	}

	if parsed == 0 {
		return domain.FailedSummary(fmt.Sprintf("%v (%d candidate files under %s)", ErrAllReportsFailed, len(files), opts.Root))
	}

	return domain.NewSummary(line, branch, classes)
}

// parseAll fans parsing out to a bounded pool, one worker per file. Each
// worker exclusively owns its file's result slot, so the only
// synchronization point is the final join. A failed file leaves a nil
// slot behind.
func (s *Service) parseAll(ctx context.Context, files []string, query domain.ScopeQuery, workers int) []*FileResult {
	workers = workerLimit(workers, len(files))
	results := make([]*FileResult, len(files))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			start := time.Now()
			res, err := s.Parser.Parse(path, query)
			if err != nil {
				s.Log.Warn("skipping unparseable coverage report",
					zap.String("path", path),
					zap.Error(err))
				return nil
			}
			s.Log.Debug("parsed coverage report",
				zap.String("path", path),
				zap.Int("classes", len(res.Classes)),
				zap.Duration("took", time.Since(start)))
			results[i] = &res
			return nil
		})
	}
	// Workers report failures through their result slot, never as errors.
	_ = g.Wait()

	return results
}

// workerLimit clamps the pool size to [1, files], deriving it from the
// CPU count when no override is configured.
func workerLimit(configured, files int) int {
	limit := configured
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	if limit > files {
		limit = files
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}
