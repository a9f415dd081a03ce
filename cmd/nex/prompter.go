package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"nex/internal/duplicates"
	"nex/internal/preflight"
	"nex/internal/project"
	"nex/internal/scanner"
	"nex/internal/workflow"
)

// answer is the default used when the user just presses enter.
type answer int

const (
	answerNone answer = iota
	answerNo
	answerYes
)

// terminalPrompter implements workflow.Prompter on a line-oriented terminal.
type terminalPrompter struct {
	in           *bufio.Reader
	readOnce     sync.Once
	lines        chan lineResult
	out          io.Writer
	assumeYes    bool
	colorize     bool
	previewLimit int
}

func newTerminalPrompter(in io.Reader, out io.Writer, assumeYes, colorize bool, previewLimit int) *terminalPrompter {
	return &terminalPrompter{
		in:           bufio.NewReader(in),
		out:          out,
		assumeYes:    assumeYes,
		colorize:     colorize,
		previewLimit: previewLimit,
	}
}

var _ workflow.Prompter = (*terminalPrompter)(nil)

func (p *terminalPrompter) banner() {
	fmt.Fprintln(p.out, renderBanner(p.colorize))
}

// promptDirectory asks for the target until a usable directory is given.
// The current working directory is the default.
func (p *terminalPrompter) promptDirectory(ctx context.Context) (string, error) {
	def, err := os.Getwd()
	if err != nil {
		def = "."
	}
	for {
		fmt.Fprintf(p.out, "Enter directory path to organize [%s]: ", def)
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if line == "" {
			line = def
		}
		abs, err := preflight.CheckTarget(line)
		if err == nil {
			return abs, nil
		}
		fmt.Fprintln(p.out, colorText(fmt.Sprintf("Error: %s is not a valid directory (%v)", line, err), ansiRed, p.colorize))
	}
}

func (p *terminalPrompter) ConfirmProject(ctx context.Context, result project.Result) (bool, error) {
	fmt.Fprintln(p.out, colorText("Warning: this appears to be a project directory ("+result.Marker+").", ansiYellow, p.colorize))
	fmt.Fprintln(p.out, "Some files will be excluded from organization to preserve functionality.")
	if len(result.Protected) > 0 {
		fmt.Fprintln(p.out, "The following files will be excluded:")
		fmt.Fprint(p.out, renderProtected(result.Protected))
	}
	return p.askYesNo(ctx, "Do you want to proceed with organizing this directory?", answerNo)
}

func (p *terminalPrompter) ShowFileMap(_ context.Context, files scanner.FileMap) error {
	if files.Empty() {
		fmt.Fprintln(p.out, colorText("No files found to organize.", ansiYellow, p.colorize))
		return nil
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Files to organize:")
	fmt.Fprintln(p.out, renderFileMap(files, p.previewLimit))
	return nil
}

func (p *terminalPrompter) ConfirmCategory(ctx context.Context, category string, files []scanner.FileEntry) (bool, error) {
	return p.askYesNo(ctx, fmt.Sprintf("Organize %d files into %s folder?", len(files), category), answerNone)
}

func (p *terminalPrompter) ConfirmDuplicates(ctx context.Context, groups []duplicates.Group) (bool, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, colorText("Duplicate files found:", ansiYellow, p.colorize))
	fmt.Fprint(p.out, renderDuplicateGroups(groups))
	removable := 0
	for _, g := range groups {
		removable += len(g.Files) - 1
	}
	return p.askYesNo(ctx, fmt.Sprintf("Remove %d duplicate files?", removable), answerNone)
}

func (p *terminalPrompter) Notify(_ context.Context, event workflow.Event) {
	verb := func(done, pending string) string {
		if event.DryRun {
			return pending
		}
		return done
	}
	var line string
	kind := ansiGreen
	switch event.Kind {
	case workflow.EventProjectDeclined:
		line, kind = "Operation cancelled.", ansiYellow
	case workflow.EventNothingToOrganize:
		line, kind = "No files found to organize. Exiting.", ansiYellow
	case workflow.EventNoCategories:
		line, kind = "No categories selected for organization. Exiting.", ansiYellow
	case workflow.EventNoDuplicates:
		line = "No duplicate files found."
	case workflow.EventDuplicatesRemoved:
		line = fmt.Sprintf("%s %d duplicate files.", verb("Successfully removed", "Would remove"), event.Count)
	case workflow.EventCategoryMoved:
		line = fmt.Sprintf("%s %d files to %s folder.", verb("Moved", "Would move"), event.Count, event.Category)
	default:
		return
	}
	if event.Failed > 0 {
		line += fmt.Sprintf(" (%d failed)", event.Failed)
		kind = ansiYellow
	}
	fmt.Fprintln(p.out, colorText(line, kind, p.colorize))
}

// askYesNo prompts until it gets a yes/no answer. End of input cancels the
// run.
func (p *terminalPrompter) askYesNo(ctx context.Context, question string, def answer) (bool, error) {
	hint := "[y/n]"
	switch def {
	case answerYes:
		hint = "[Y/n]"
	case answerNo:
		hint = "[y/N]"
	}
	for {
		fmt.Fprintf(p.out, "%s %s: ", question, hint)
		if p.assumeYes {
			fmt.Fprintln(p.out, "y")
			return true, nil
		}
		line, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "":
			if def != answerNone {
				return def == answerYes, nil
			}
		}
		fmt.Fprintln(p.out, "Please enter Y or N")
	}
}

type lineResult struct {
	line string
	err  error
}

// startReader launches the single goroutine that owns p.in. A line read
// while no prompt is waiting is held for the next readLine.
func (p *terminalPrompter) startReader() {
	p.readOnce.Do(func() {
		p.lines = make(chan lineResult)
		go func() {
			defer close(p.lines)
			for {
				line, err := p.in.ReadString('\n')
				p.lines <- lineResult{line: line, err: err}
				if err != nil {
					return
				}
			}
		}()
	})
}

// readLine reads one trimmed line. Cancellation of ctx or end of input
// returns context.Canceled.
func (p *terminalPrompter) readLine(ctx context.Context) (string, error) {
	p.startReader()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-p.lines:
		if !ok {
			return "", context.Canceled
		}
		line := strings.TrimSpace(r.line)
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				if line != "" {
					return line, nil
				}
				return "", context.Canceled
			}
			return "", r.err
		}
		return line, nil
	}
}
