package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nex/internal/fileutil"
	"nex/internal/fserr"
	"nex/internal/logging"
	"nex/internal/scanner"
)

// maxCollisionAttempts bounds the "_N" search for a free destination.
const maxCollisionAttempts = 100000

// MoveRecord pairs a source file with its destination.
type MoveRecord struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Organizer executes moves and deletions inside one target directory.
type Organizer struct {
	target string
	dryRun bool
	logger *slog.Logger

	// reserved holds destinations handed out during a dry run so later
	// records in the same run do not claim them again.
	reserved map[string]struct{}
}

// Option customizes an Organizer.
type Option func(*Organizer)

// WithDryRun makes Plan, Move and Delete report their outcome without
// modifying the filesystem.
func WithDryRun(enabled bool) Option {
	return func(o *Organizer) {
		o.dryRun = enabled
	}
}

// New builds an organizer rooted at targetDir.
func New(targetDir string, logger *slog.Logger, opts ...Option) *Organizer {
	o := &Organizer{
		target:   targetDir,
		logger:   logging.NewComponentLogger(logger, "organizer"),
		reserved: make(map[string]struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// DryRun reports whether the organizer leaves the filesystem untouched.
func (o *Organizer) DryRun() bool {
	return o.dryRun
}

// Plan ensures the category folder exists and pairs every file with
// <target>/<category>/<name>. Collisions are resolved later by Move.
func (o *Organizer) Plan(category string, files []scanner.FileEntry) ([]MoveRecord, error) {
	category = strings.TrimSpace(category)
	if category == "" || category == "." || category == ".." || strings.ContainsRune(category, filepath.Separator) {
		return nil, fserr.Wrap(fserr.ErrInvalidInput, "plan category", category, nil)
	}
	dir := filepath.Join(o.target, category)
	if !o.dryRun {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fserr.Wrap(nil, "create category folder", dir, err)
		}
	}

	records := make([]MoveRecord, 0, len(files))
	for _, file := range files {
		records = append(records, MoveRecord{
			Source:      file.Path,
			Destination: filepath.Join(dir, filepath.Base(file.Path)),
		})
	}
	o.logger.Debug("move plan built",
		logging.String("category", category),
		logging.Int("files", len(records)),
	)
	return records, nil
}

// Move executes records in order and returns the successful moves with their
// final destinations. An existing destination is never overwritten.
func (o *Organizer) Move(ctx context.Context, records []MoveRecord) ([]MoveRecord, *fserr.Report) {
	logger := logging.WithContext(ctx, o.logger)
	report := fserr.NewReport()
	moved := make([]MoveRecord, 0, len(records))

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			report.Add("move", record.Source, err)
			logger.Warn("move cancelled",
				logging.Int("remaining", len(records)-i),
				logging.Error(err),
			)
			break
		}

		final, err := o.moveOne(record)
		if err != nil {
			report.Add("move", record.Source, err)
			logger.Warn("move failed",
				logging.String(logging.FieldPath, record.Source),
				logging.String("destination", record.Destination),
				logging.Error(err),
			)
			continue
		}
		moved = append(moved, MoveRecord{Source: record.Source, Destination: final})
		logger.Debug("file moved",
			logging.String(logging.FieldPath, record.Source),
			logging.String("destination", final),
			logging.Bool("dry_run", o.dryRun),
		)
	}

	logger.Info("moves finished",
		logging.Int("moved", len(moved)),
		logging.Int("failed", report.Len()),
		logging.Bool("dry_run", o.dryRun),
	)
	return moved, report
}

func (o *Organizer) moveOne(record MoveRecord) (string, error) {
	if _, err := os.Stat(record.Source); err != nil {
		return "", fserr.Wrap(nil, "stat source", record.Source, err)
	}
	target, err := o.nextFreePath(record.Destination)
	if err != nil {
		return "", err
	}
	if o.dryRun {
		o.reserved[target] = struct{}{}
		return target, nil
	}
	if err := fileutil.MoveFile(record.Source, target); err != nil {
		return "", fserr.Wrap(nil, "rename", record.Source, err)
	}
	return target, nil
}

// nextFreePath returns dst when it is unused, otherwise the first
// "<stem>_N<ext>" sibling that is.
func (o *Organizer) nextFreePath(dst string) (string, error) {
	free, err := o.isFree(dst)
	if err != nil || free {
		return dst, err
	}
	dir := filepath.Dir(dst)
	stem, ext := splitName(filepath.Base(dst))
	for n := 1; n <= maxCollisionAttempts; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		free, err := o.isFree(candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
	return "", fserr.Wrap(fserr.ErrExists, "allocate destination", dst, fmt.Errorf("exhausted %d collision suffixes", maxCollisionAttempts))
}

func (o *Organizer) isFree(path string) (bool, error) {
	if _, taken := o.reserved[path]; taken {
		return false, nil
	}
	exists, err := fileutil.Exists(path)
	if err != nil {
		return false, fserr.Wrap(nil, "check destination", path, err)
	}
	return !exists, nil
}

// splitName separates a file name into stem and extension. A leading dot
// alone does not start an extension.
func splitName(name string) (string, string) {
	ext := filepath.Ext(name)
	if ext == name {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// Delete removes each path and returns those removed. Missing files are
// reported like any other failure.
func (o *Organizer) Delete(ctx context.Context, paths []string) ([]string, *fserr.Report) {
	logger := logging.WithContext(ctx, o.logger)
	report := fserr.NewReport()
	removed := make([]string, 0, len(paths))

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			report.Add("delete", path, err)
			logger.Warn("delete cancelled",
				logging.Int("remaining", len(paths)-i),
				logging.Error(err),
			)
			break
		}

		var err error
		if o.dryRun {
			_, err = os.Lstat(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			wrapped := fserr.Wrap(nil, "remove", path, err)
			report.Add("delete", path, wrapped)
			logger.Warn("delete failed", logging.String(logging.FieldPath, path), logging.Error(err))
			continue
		}
		removed = append(removed, path)
		logger.Debug("file removed", logging.String(logging.FieldPath, path), logging.Bool("dry_run", o.dryRun))
	}

	logger.Info("deletions finished",
		logging.Int("removed", len(removed)),
		logging.Int("failed", report.Len()),
		logging.Bool("dry_run", o.dryRun),
	)
	return removed, report
}
