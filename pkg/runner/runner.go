package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/headcheck/internal/logging"
	"github.com/yaklabco/headcheck/pkg/config"
	"github.com/yaklabco/headcheck/pkg/lint"
)

// Linter lints a single file. *lint.Engine satisfies it.
type Linter interface {
	LintPath(ctx context.Context, path string, cfg *config.Config) (*lint.FileResult, error)
}

// Runner lints many files with a bounded worker pool.
type Runner struct {
	Linter Linter
}

// New creates a Runner around linter.
func New(linter Linter) *Runner {
	return &Runner{Linter: linter}
}

// Run discovers files under opts.Paths and lints them concurrently.
// Every file is parsed and checked independently, so no rule state is
// shared between files. Outcomes are returned in path order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: Stats{
			FilesDiscovered:       len(files),
			DiagnosticsBySeverity: make(map[config.Severity]int),
		},
	}

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	// Each worker owns one slot, so no locking is needed and the
	// slice order is the discovery order.
	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			res, err := r.Linter.LintPath(groupCtx, path, opts.Config)
			outcomes[idx] = FileOutcome{Path: path, Result: res, Error: err}
			if err != nil {
				logger.Debug("lint failed", logging.FieldPath, path, logging.FieldError, err)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldJobs, jobs,
		logging.FieldDuration, time.Since(start),
	)

	return result, nil
}
