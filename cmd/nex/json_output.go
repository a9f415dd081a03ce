package main

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"nex/internal/fserr"
	"nex/internal/workflow"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	return encodeJSON(cmd.OutOrStdout(), v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type failureView struct {
	Op    string     `json:"op"`
	Path  string     `json:"path"`
	Kind  fserr.Kind `json:"kind"`
	Error string     `json:"error,omitempty"`
}

type projectView struct {
	IsProject bool     `json:"is_project"`
	Marker    string   `json:"marker,omitempty"`
	Protected []string `json:"protected"`
}

type summaryView struct {
	workflow.Summary
	Project  projectView   `json:"project"`
	Failures []failureView `json:"failures"`
}

type categoryView struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

type previewView struct {
	workflow.Preview
	Project    projectView    `json:"project"`
	Categories []categoryView `json:"categories"`
	Failures   []failureView  `json:"failures"`
}

func newSummaryView(s workflow.Summary) summaryView {
	return summaryView{
		Summary:  s,
		Project:  newProjectView(s.Project.IsProject, s.Project.Marker, s.Project.Protected.Sorted()),
		Failures: newFailureViews(s.Failures),
	}
}

func newPreviewView(p workflow.Preview) previewView {
	view := previewView{
		Preview:  p,
		Project:  newProjectView(p.Project.IsProject, p.Project.Marker, p.Project.Protected.Sorted()),
		Failures: newFailureViews(p.Report.Failures()),
	}
	for _, cat := range p.Files.Categories() {
		cv := categoryView{Name: cat}
		for _, f := range p.Files.Files(cat) {
			cv.Files = append(cv.Files, f.Name)
		}
		view.Categories = append(view.Categories, cv)
	}
	return view
}

func newProjectView(isProject bool, marker string, protected []string) projectView {
	names := make([]string, 0, len(protected))
	for _, path := range protected {
		names = append(names, filepath.Base(path))
	}
	return projectView{IsProject: isProject, Marker: marker, Protected: names}
}

func newFailureViews(failures []fserr.Failure) []failureView {
	out := make([]failureView, 0, len(failures))
	for _, f := range failures {
		v := failureView{Op: f.Op, Path: f.Path, Kind: f.Kind}
		if f.Err != nil {
			v.Error = f.Err.Error()
		}
		out = append(out, v)
	}
	return out
}
