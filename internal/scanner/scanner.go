package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"nex/internal/category"
	"nex/internal/fileutil"
	"nex/internal/fserr"
	"nex/internal/logging"
	"nex/internal/project"
)

// Options controls which entries a scan keeps.
type Options struct {
	Protected project.ProtectedSet
	// Exclude holds doublestar glob patterns. A relative pattern matches the
	// base name, the path relative to the scanned directory, or the trailing
	// segments of the absolute path; an absolute pattern matches the
	// absolute path.
	Exclude []string
	Logger  *slog.Logger
}

// ValidatePatterns rejects malformed exclusion patterns.
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return fserr.Wrap(fserr.ErrInvalidInput, "validate exclusion pattern", pattern, nil)
		}
	}
	return nil
}

// Scan lists the top level of dir and groups eligible files by category.
// Reading dir itself is fatal; per-entry failures are reported and skipped.
func Scan(ctx context.Context, dir string, opts Options) (FileMap, *fserr.Report, error) {
	logger := logging.NewComponentLogger(opts.Logger, "scanner")
	report := fserr.NewReport()

	if err := ValidatePatterns(opts.Exclude); err != nil {
		return NewFileMap(), report, err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return NewFileMap(), report, fserr.Wrap(fserr.ErrInvalidInput, "resolve directory", dir, err)
	}
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return NewFileMap(), report, fserr.Wrap(nil, "read directory", absDir, err)
	}

	files := NewFileMap()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return files, report, err
		}
		path := filepath.Join(absDir, entry.Name())

		fileEntry, reason, err := inspect(absDir, entry, opts)
		if err != nil {
			report.Add("stat", path, err)
			logger.Warn("skipping unreadable entry", logging.String(logging.FieldPath, path), logging.Error(err))
			continue
		}
		if reason != "" {
			logger.Debug("entry skipped", logging.String(logging.FieldPath, path), logging.String("reason", reason))
			continue
		}
		files.Add(fileEntry)
	}

	logger.Info("scan complete",
		logging.String(logging.FieldTarget, absDir),
		logging.Int("files", files.Total()),
		logging.Int("categories", files.Len()),
		logging.Int("failures", report.Len()),
	)
	return files, report, nil
}

// inspect applies the skip rules to one entry. A non-empty reason means the
// entry is skipped.
func inspect(dir string, entry fs.DirEntry, opts Options) (FileEntry, string, error) {
	name := entry.Name()
	path := filepath.Join(dir, name)

	info, err := fileutil.StatEntry(dir, entry)
	if err != nil {
		return FileEntry{}, "", err
	}
	if info.IsDir() {
		if category.IsOutputFolder(name) {
			return FileEntry{}, "output folder", nil
		}
		return FileEntry{}, "directory", nil
	}
	if !info.Mode().IsRegular() {
		return FileEntry{}, "not a regular file", nil
	}
	if strings.HasPrefix(name, ".") {
		return FileEntry{}, "hidden", nil
	}
	if opts.Protected.Contains(path) {
		return FileEntry{}, "protected", nil
	}
	if pattern, ok := excluded(dir, path, opts.Exclude); ok {
		return FileEntry{}, fmt.Sprintf("excluded by %q", pattern), nil
	}

	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return FileEntry{
		Path:       path,
		Name:       name,
		Ext:        ext,
		Size:       info.Size(),
		Executable: info.Mode().Perm()&0o111 != 0,
		Category:   category.Resolve(ext),
	}, "", nil
}

func excluded(dir, path string, patterns []string) (string, bool) {
	if len(patterns) == 0 {
		return "", false
	}
	name := filepath.Base(path)
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = name
	}
	slashedPath := filepath.ToSlash(path)
	for _, pattern := range patterns {
		slashed := filepath.ToSlash(pattern)
		var candidates []string
		if filepath.IsAbs(pattern) {
			candidates = []string{slashedPath}
		} else {
			candidates = []string{name, filepath.ToSlash(rel), tail(slashedPath, strings.Count(slashed, "/")+1)}
		}
		for _, candidate := range candidates {
			if ok, _ := doublestar.Match(slashed, candidate); ok {
				return pattern, true
			}
		}
	}
	return "", false
}

// tail returns the last n slash-separated segments of path.
func tail(path string, n int) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if n >= len(segments) {
		return strings.Join(segments, "/")
	}
	return strings.Join(segments[len(segments)-n:], "/")
}
