package workflow

import (
	"context"

	"nex/internal/config"
	"nex/internal/duplicates"
	"nex/internal/fserr"
	"nex/internal/organizer"
	"nex/internal/project"
	"nex/internal/scanner"
	"nex/internal/stats"
)

// Prompter is the interactive side of a run. Returning an error aborts the
// run; a cancelled prompt should return context.Canceled.
type Prompter interface {
	// ConfirmProject is asked when the target looks like a software project.
	ConfirmProject(ctx context.Context, result project.Result) (bool, error)
	// ShowFileMap previews the scan before any confirmation.
	ShowFileMap(ctx context.Context, files scanner.FileMap) error
	ConfirmCategory(ctx context.Context, category string, files []scanner.FileEntry) (bool, error)
	// ConfirmDuplicates shows the groups and asks once whether to remove
	// every non-keeper.
	ConfirmDuplicates(ctx context.Context, groups []duplicates.Group) (bool, error)
	Notify(ctx context.Context, event Event)
}

// EventKind labels progress notifications sent to the Prompter.
type EventKind string

const (
	EventProjectDeclined   EventKind = "project_declined"
	EventNothingToOrganize EventKind = "nothing_to_organize"
	EventNoCategories      EventKind = "no_categories"
	EventNoDuplicates      EventKind = "no_duplicates"
	EventDuplicatesRemoved EventKind = "duplicates_removed"
	EventCategoryMoved     EventKind = "category_moved"
)

// Event describes one step outcome.
type Event struct {
	Kind     EventKind
	Category string
	Count    int
	Failed   int
	DryRun   bool
}

// Outcome describes how a run ended.
type Outcome string

const (
	OutcomeCompleted       Outcome = "completed"
	OutcomeProjectDeclined Outcome = "project_declined"
	OutcomeNothingFound    Outcome = "nothing_to_organize"
	OutcomeNoCategories    Outcome = "no_categories_selected"
)

// Options configures a Runner.
type Options struct {
	Target           string
	Exclude          []string
	ProjectDetection bool
	ScriptExtensions []string
	ChunkSize        int
	DryRun           bool
	// LockDir holds directory locks; empty disables locking.
	LockDir  string
	Progress duplicates.ProgressFunc
}

// OptionsFromConfig maps configuration onto run options for target.
func OptionsFromConfig(cfg *config.Config, target string) Options {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return Options{
		Target:           target,
		Exclude:          append([]string(nil), cfg.Organize.Exclude...),
		ProjectDetection: cfg.Organize.ProjectDetection,
		ScriptExtensions: append([]string(nil), cfg.Organize.ScriptExtensions...),
		ChunkSize:        cfg.ChunkSize(),
		LockDir:          cfg.Paths.LockDir,
	}
}

// Summary is the result of one run.
type Summary struct {
	RunID   string         `json:"run_id"`
	Target  string         `json:"target"`
	DryRun  bool           `json:"dry_run"`
	Outcome Outcome        `json:"outcome"`
	Project project.Result `json:"-"`
	// Stats reflects the scan; DuplicatesRemoved counts actual deletions.
	Stats             stats.Stats            `json:"stats"`
	DuplicatesRemoved int                    `json:"duplicates_removed"`
	Removed           []string               `json:"removed"`
	Moves             []organizer.MoveRecord `json:"moves"`
	Failures          []fserr.Failure        `json:"failures"`

	Report *fserr.Report `json:"-"`
}

// Preview is the read-only view of a target produced by Runner.Preview.
type Preview struct {
	Target  string             `json:"target"`
	Project project.Result     `json:"-"`
	Files   scanner.FileMap    `json:"-"`
	Groups  []duplicates.Group `json:"groups"`
	Stats   stats.Stats        `json:"stats"`
	Report  *fserr.Report      `json:"-"`
}
