package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"

	"nex/internal/duplicates"
	"nex/internal/fserr"
	"nex/internal/project"
	"nex/internal/scanner"
	"nex/internal/workflow"
)

func renderBanner(colorize bool) string {
	return renderPanel("Welcome", []string{
		colorText("nex file organizer", ansiBlue, colorize),
		"Sorts the files of a messy directory into category folders.",
	})
}

// renderPanel draws lines inside a titled single-column box.
func renderPanel(title string, lines []string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	tw.AppendRow(table.Row{strings.Join(lines, "\n")})
	return tw.Render()
}

func renderProtected(protected project.ProtectedSet) string {
	var b strings.Builder
	for _, path := range protected.Sorted() {
		fmt.Fprintf(&b, "  - %s\n", filepath.Base(path))
	}
	return b.String()
}

// renderFileMap draws the categories as a tree showing at most limit names
// per category.
func renderFileMap(files scanner.FileMap, limit int) string {
	if limit <= 0 {
		limit = 5
	}
	lw := list.NewWriter()
	lw.SetStyle(list.StyleConnectedRounded)
	lw.AppendItem("Categories")
	lw.Indent()
	for _, cat := range files.Categories() {
		entries := files.Files(cat)
		lw.AppendItem(fmt.Sprintf("%s (%d files)", cat, len(entries)))
		lw.Indent()
		for i, entry := range entries {
			if i == limit {
				lw.AppendItem(fmt.Sprintf("... and %d more files", len(entries)-limit))
				break
			}
			lw.AppendItem(entry.Name)
		}
		lw.UnIndent()
	}
	return lw.Render()
}

func renderDuplicateGroups(groups []duplicates.Group) string {
	var b strings.Builder
	for i, g := range groups {
		rows := make([][]string, 0, len(g.Files))
		for j, f := range g.Files {
			keep := "✗"
			if j == 0 {
				keep = "✓"
			}
			rows = append(rows, []string{keep, f.Path, humanize.Bytes(uint64(f.Size))})
		}
		fmt.Fprintf(&b, "Duplicate Group %d\n", i+1)
		b.WriteString(renderTable([]string{"Keep?", "File Path", "Size"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
		b.WriteString("\n")
	}
	return b.String()
}

func renderMoves(summary workflow.Summary) string {
	if len(summary.Moves) == 0 && len(summary.Removed) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(summary.Moves)+len(summary.Removed))
	for _, path := range summary.Removed {
		rows = append(rows, []string{"delete", relativeTo(summary.Target, path), ""})
	}
	for _, move := range summary.Moves {
		rows = append(rows, []string{"move", relativeTo(summary.Target, move.Source), relativeTo(summary.Target, move.Destination)})
	}
	return renderTable([]string{"Action", "Source", "Destination"}, rows, nil)
}

func renderSummary(summary workflow.Summary, colorize bool) string {
	title := "Summary"
	heading := colorText("Organization complete!", ansiGreen, colorize)
	if summary.DryRun {
		heading = colorText("Dry run complete, no files were changed.", ansiYellow, colorize)
	}
	lines := []string{
		heading,
		"",
		fmt.Sprintf("Total files processed: %d", summary.Stats.TotalFiles),
		fmt.Sprintf("Categories: %d", summary.Stats.Categories),
		fmt.Sprintf("Duplicate groups found: %d", summary.Stats.DuplicateGroups),
		fmt.Sprintf("Duplicate files removed: %d", summary.DuplicatesRemoved),
	}
	if summary.Stats.ReclaimableBytes > 0 {
		lines = append(lines, fmt.Sprintf("Space held by duplicates: %s", humanize.Bytes(uint64(summary.Stats.ReclaimableBytes))))
	}
	if n := len(summary.Failures); n > 0 {
		lines = append(lines, colorText(fmt.Sprintf("Failures: %d", n), ansiRed, colorize))
	}
	return renderPanel(title, lines)
}

func renderFailures(failures []fserr.Failure) string {
	if len(failures) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		cause := ""
		if f.Err != nil {
			cause = f.Err.Error()
		}
		rows = append(rows, []string{f.Op, f.Path, string(f.Kind), cause})
	}
	return renderTable([]string{"Operation", "Path", "Kind", "Error"}, rows, nil)
}

func relativeTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
