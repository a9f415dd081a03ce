package workflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nex/internal/dirlock"
	"nex/internal/duplicates"
	"nex/internal/fserr"
	"nex/internal/logging"
	"nex/internal/organizer"
	"nex/internal/preflight"
	"nex/internal/project"
	"nex/internal/scanner"
	"nex/internal/stats"
)

// Runner executes organize runs.
type Runner struct {
	opts     Options
	prompter Prompter
	logger   *slog.Logger
}

// NewRunner constructs a Runner. prompter is required for Run.
func NewRunner(opts Options, prompter Prompter, logger *slog.Logger) *Runner {
	return &Runner{
		opts:     opts,
		prompter: prompter,
		logger:   logging.NewComponentLogger(logger, "workflow"),
	}
}

// Run performs one organize pass. Per-item failures are collected in the
// summary; the returned error is reserved for invalid input, directory-level
// failures and cancellation.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if r.prompter == nil {
		return Summary{}, fserr.Wrap(fserr.ErrInvalidInput, "run", r.opts.Target, errors.New("prompter not configured"))
	}

	started := time.Now()
	runID := logging.NewRunID()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)
	report := fserr.NewReport()
	summary := Summary{RunID: runID, DryRun: r.opts.DryRun, Report: report}

	target, err := r.prepare()
	if err != nil {
		return summary, err
	}
	summary.Target = target
	logger = logger.With(logging.String(logging.FieldTarget, target))

	lock, err := r.lock(target, logger)
	if err != nil {
		return summary, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("directory lock release failed", logging.Error(err))
		}
	}()

	logger.Info("organize run started", logging.Bool("dry_run", r.opts.DryRun))

	result, err := r.detector(logger).Inspect(target)
	if err != nil {
		return summary, err
	}
	summary.Project = result
	if result.IsProject {
		proceed, err := r.prompter.ConfirmProject(ctx, result)
		if err != nil {
			return summary, err
		}
		if !proceed {
			logger.Info("run declined for project directory", logging.String("marker", result.Marker))
			r.prompter.Notify(ctx, Event{Kind: EventProjectDeclined})
			summary.Outcome = OutcomeProjectDeclined
			return r.finish(summary, scanner.NewFileMap(), nil), nil
		}
	}

	files, scanReport, err := scanner.Scan(ctx, target, scanner.Options{
		Protected: result.Protected,
		Exclude:   r.opts.Exclude,
		Logger:    logger,
	})
	report.Merge(scanReport)
	if err != nil {
		return r.finish(summary, files, nil), err
	}
	if err := r.prompter.ShowFileMap(ctx, files); err != nil {
		return r.finish(summary, files, nil), err
	}
	if files.Empty() {
		r.prompter.Notify(ctx, Event{Kind: EventNothingToOrganize})
		summary.Outcome = OutcomeNothingFound
		return r.finish(summary, files, nil), nil
	}

	confirmed, err := r.confirmCategories(ctx, files)
	if err != nil {
		return r.finish(summary, files, nil), err
	}
	if len(confirmed) == 0 {
		r.prompter.Notify(ctx, Event{Kind: EventNoCategories})
		summary.Outcome = OutcomeNoCategories
		return r.finish(summary, files, nil), nil
	}

	groups, dupReport, err := duplicates.FindInMap(ctx, files, duplicates.Options{
		ChunkSize: r.opts.ChunkSize,
		Progress:  r.opts.Progress,
		Logger:    logger,
	})
	report.Merge(dupReport)
	if err != nil {
		return r.finish(summary, files, nil), err
	}

	org := organizer.New(target, logger, organizer.WithDryRun(r.opts.DryRun))

	removed, err := r.removeDuplicates(ctx, org, groups, report)
	summary.Removed = removed
	if err != nil {
		return r.finish(summary, files, groups), err
	}

	summary.Moves = r.moveCategories(ctx, org, files, confirmed, removed, report)
	summary.Outcome = OutcomeCompleted
	summary = r.finish(summary, files, groups)

	logger.Info("organize run finished",
		logging.Int("moved", len(summary.Moves)),
		logging.Int("duplicates_removed", summary.DuplicatesRemoved),
		logging.Int64("reclaimable_bytes", summary.Stats.ReclaimableBytes),
		logging.Int("failures", report.Len()),
		logging.Duration("elapsed", time.Since(started)),
	)
	if failed := report.Err(); failed != nil {
		logger.Warn("organize run had failures", logging.Error(failed))
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// Preview scans target and finds duplicates without prompting or mutating.
func (r *Runner) Preview(ctx context.Context) (Preview, error) {
	ctx = logging.WithRunID(ctx, logging.NewRunID())
	logger := logging.WithContext(ctx, r.logger)
	report := fserr.NewReport()
	preview := Preview{Files: scanner.NewFileMap(), Report: report}

	target, err := r.prepare()
	if err != nil {
		return preview, err
	}
	preview.Target = target

	result, err := r.detector(logger).Inspect(target)
	if err != nil {
		return preview, err
	}
	preview.Project = result

	files, scanReport, err := scanner.Scan(ctx, target, scanner.Options{
		Protected: result.Protected,
		Exclude:   r.opts.Exclude,
		Logger:    logger,
	})
	report.Merge(scanReport)
	preview.Files = files
	if err != nil {
		return preview, err
	}

	groups, dupReport, err := duplicates.FindInMap(ctx, files, duplicates.Options{
		ChunkSize: r.opts.ChunkSize,
		Progress:  r.opts.Progress,
		Logger:    logger,
	})
	report.Merge(dupReport)
	if err != nil {
		return preview, err
	}
	preview.Groups = groups
	preview.Stats = stats.Compute(files, groups)
	return preview, nil
}

func (r *Runner) prepare() (string, error) {
	target, err := preflight.CheckTarget(r.opts.Target)
	if err != nil {
		return "", err
	}
	if err := scanner.ValidatePatterns(r.opts.Exclude); err != nil {
		return "", err
	}
	return target, nil
}

func (r *Runner) lock(target string, logger *slog.Logger) (*dirlock.Lock, error) {
	if r.opts.LockDir == "" {
		logger.Debug("directory locking disabled")
		return nil, nil
	}
	lock, err := dirlock.Acquire(r.opts.LockDir, target)
	if err != nil {
		return nil, err
	}
	logger.Debug("directory lock acquired", logging.String("lock", lock.Path()))
	return lock, nil
}

func (r *Runner) detector(logger *slog.Logger) *project.Detector {
	return project.NewDetector(project.Options{
		Disabled:         !r.opts.ProjectDetection,
		ScriptExtensions: r.opts.ScriptExtensions,
		Logger:           logger,
	})
}

func (r *Runner) finish(summary Summary, files scanner.FileMap, groups []duplicates.Group) Summary {
	summary.Stats = stats.Compute(files, groups)
	summary.DuplicatesRemoved = len(summary.Removed)
	summary.Failures = summary.Report.Failures()
	return summary
}
