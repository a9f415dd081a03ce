package project

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"nex/internal/config"
	"nex/internal/fileutil"
	"nex/internal/fserr"
	"nex/internal/logging"
)

var markerFiles = []string{
	"requirements.txt",
	"pyproject.toml",
	"setup.py",
	"package.json",
	"Cargo.toml",
	"Gemfile",
	"pom.xml",
	"build.gradle",
	"CMakeLists.txt",
	"Makefile",
	".git",
	".gitignore",
	"docker-compose.yml",
	"Dockerfile",
}

var conventionalDirs = []string{".git", "src", "tests", "docs", "build", "dist"}

// minConventionalDirs is how many conventional directories mark a project
// when no marker file is present.
const minConventionalDirs = 2

var criticalFiles = map[string]struct{}{
	"main.py":       {},
	"app.py":        {},
	"index.js":      {},
	"app.js":        {},
	"main.js":       {},
	"main.go":       {},
	"main.rs":       {},
	"Main.java":     {},
	"README.md":     {},
	"LICENSE":       {},
	"config.json":   {},
	"settings.json": {},
	".env":          {},
	"manage.py":     {},
}

// ProtectedSet holds absolute paths that must never be moved or deleted.
type ProtectedSet map[string]struct{}

// Contains reports whether path is protected.
func (s ProtectedSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Sorted returns the protected paths in lexical order.
func (s ProtectedSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for path := range s {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Options configures a Detector.
type Options struct {
	// Disabled forces every directory to be treated as a non-project.
	Disabled bool
	// ScriptExtensions lists interpreted-script extensions (without dot).
	// Executable files carrying one of them are protected.
	ScriptExtensions []string
	Logger           *slog.Logger
}

// Result is the outcome of inspecting one directory.
type Result struct {
	IsProject bool
	// Marker names the entry that triggered detection, or a summary of the
	// conventional directories found.
	Marker    string
	Protected ProtectedSet
}

// Detector inspects directories for project structure.
type Detector struct {
	disabled bool
	scripts  map[string]struct{}
	logger   *slog.Logger
}

// NewDetector builds a Detector. A nil ScriptExtensions list means the
// default list from configuration.
func NewDetector(opts Options) *Detector {
	exts := opts.ScriptExtensions
	if exts == nil {
		exts = config.Default().Organize.ScriptExtensions
	}
	scripts := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		if normalized := config.NormalizeExtension(ext); normalized != "" {
			scripts[normalized] = struct{}{}
		}
	}
	return &Detector{
		disabled: opts.Disabled,
		scripts:  scripts,
		logger:   logging.NewComponentLogger(opts.Logger, "project"),
	}
}

// Detect reports whether dir looks like a software project.
func (d *Detector) Detect(dir string) (bool, error) {
	abs, err := absDir(dir)
	if err != nil {
		return false, err
	}
	ok, _, err := d.detect(abs)
	return ok, err
}

// absDir resolves dir so protected keys match the absolute paths the scanner
// looks up.
func absDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fserr.Wrap(fserr.ErrInvalidInput, "resolve directory", dir, err)
	}
	return abs, nil
}

func (d *Detector) detect(dir string) (bool, string, error) {
	if d.disabled {
		return false, "", nil
	}
	for _, marker := range markerFiles {
		_, err := os.Stat(filepath.Join(dir, marker))
		if err == nil {
			return true, marker, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return false, "", fserr.Wrap(nil, "inspect", filepath.Join(dir, marker), err)
		}
	}

	var found []string
	for _, name := range conventionalDirs {
		info, err := os.Stat(filepath.Join(dir, name))
		if err == nil && info.IsDir() {
			found = append(found, name)
		}
	}
	if len(found) >= minConventionalDirs {
		return true, strings.Join(found, ", "), nil
	}
	return false, "", nil
}

// ProtectedFiles lists the top-level files of dir that must stay in place. It
// returns an empty set when dir is not a project.
func (d *Detector) ProtectedFiles(dir string) (ProtectedSet, error) {
	dir, err := absDir(dir)
	if err != nil {
		return ProtectedSet{}, err
	}
	isProject, _, err := d.detect(dir)
	if err != nil || !isProject {
		return ProtectedSet{}, err
	}
	return d.protectedFiles(dir)
}

func (d *Detector) protectedFiles(dir string) (ProtectedSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ProtectedSet{}, fserr.Wrap(nil, "read directory", dir, err)
	}
	protected := ProtectedSet{}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := fileutil.StatEntry(dir, entry)
		if err != nil {
			d.logger.Warn("project file inspection failed", logging.String(logging.FieldPath, path), logging.Error(err))
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if reason := d.protectionReason(info); reason != "" {
			d.logger.Debug("protecting project file",
				logging.String(logging.FieldPath, path),
				logging.String("reason", reason),
			)
			protected[path] = struct{}{}
		}
	}
	return protected, nil
}

func (d *Detector) protectionReason(info fs.FileInfo) string {
	name := info.Name()
	if _, ok := criticalFiles[name]; ok {
		return "critical file"
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if _, ok := d.scripts[ext]; ok && ext != "" && info.Mode().Perm()&0o100 != 0 {
		return "executable script"
	}
	if strings.HasPrefix(name, ".") {
		return "dotfile"
	}
	if strings.Contains(strings.ToLower(name), "config") {
		return "config file"
	}
	return ""
}

// Inspect runs detection and, for projects, computes the protected set.
func (d *Detector) Inspect(dir string) (Result, error) {
	dir, err := absDir(dir)
	if err != nil {
		return Result{Protected: ProtectedSet{}}, err
	}
	isProject, marker, err := d.detect(dir)
	if err != nil {
		return Result{Protected: ProtectedSet{}}, err
	}
	if !isProject {
		return Result{Protected: ProtectedSet{}}, nil
	}
	protected, err := d.protectedFiles(dir)
	if err != nil {
		return Result{IsProject: true, Marker: marker, Protected: ProtectedSet{}}, err
	}
	d.logger.Info("project directory detected",
		logging.String(logging.FieldTarget, dir),
		logging.String("marker", marker),
		logging.Int("protected_files", len(protected)),
	)
	return Result{IsProject: true, Marker: marker, Protected: protected}, nil
}

func (r Result) String() string {
	if !r.IsProject {
		return "not a project"
	}
	return fmt.Sprintf("project (%s), %d protected files", r.Marker, len(r.Protected))
}
