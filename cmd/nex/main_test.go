package main

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"nex/internal/testsupport"
)

func TestOrganizeAssumeYes(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.mp3":          "audio",
		"b.JPG":          "image",
		"notes.txt":      "notes",
		"notes_copy.txt": "notes",
	})

	out, _, err := runCLI(t, []string{"--dir", dir, "--yes"}, env.configPath, "")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "Organization complete!")
	requireContains(t, out, "Duplicate files removed: 1")
	requireContains(t, out, "Duplicate Group 1")

	requireExists(t, filepath.Join(dir, "Audio", "a.mp3"))
	requireExists(t, filepath.Join(dir, "Images", "b.JPG"))
	requireExists(t, filepath.Join(dir, "Documents", "notes.txt"))
	requireMissing(t, filepath.Join(dir, "notes_copy.txt"))
	requireMissing(t, filepath.Join(dir, "Documents", "notes_copy.txt"))
}

func TestOrganizeInteractiveAnswers(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.mp3": "audio", "b.png": "image"})

	// Audio: invalid then no; Images: yes.
	out, _, err := runCLI(t, []string{"--dir", dir}, env.configPath, "maybe\nn\ny\n")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "Please enter Y or N")
	requireContains(t, out, "Moved 1 files to Images folder.")
	requireContains(t, out, "No duplicate files found.")
	requireExists(t, filepath.Join(dir, "a.mp3"))
	requireExists(t, filepath.Join(dir, "Images", "b.png"))
}

func TestOrganizePromptsForDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.mp3": "audio"})

	stdin := filepath.Join(dir, "missing") + "\n" + dir + "\ny\n"
	out, _, err := runCLI(t, nil, env.configPath, stdin)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "is not a valid directory")
	requireExists(t, filepath.Join(dir, "Audio", "a.mp3"))
}

func TestOrganizeInvalidDirFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"--dir", filepath.Join(t.TempDir(), "nope")}, env.configPath, "")
	if err == nil {
		t.Fatal("expected error for invalid --dir")
	}
	requireContains(t, err.Error(), "is not a valid directory")
}

func TestOrganizeEOFCancels(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.mp3": "audio"})

	_, _, err := runCLI(t, []string{"--dir", dir}, env.configPath, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	requireExists(t, filepath.Join(dir, "a.mp3"))
}

func TestOrganizeProjectDefaultsToNo(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"Cargo.toml": "[package]", "README.md": "r", "song.mp3": "s"})

	out, _, err := runCLI(t, []string{"--dir", dir}, env.configPath, "\n")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "appears to be a project directory")
	requireContains(t, out, "README.md")
	requireContains(t, out, "Operation cancelled.")
	requireExists(t, filepath.Join(dir, "song.mp3"))
}

func TestOrganizeDryRunJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.mp3": "x", "b.mp3": "x", "debug.log": "l"})
	before := testsupport.ListFiles(t, dir)

	out, _, err := runCLI(t, []string{"--dir", dir, "--yes", "--dry-run", "--json", "--exclude", "*.log"}, env.configPath, "")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	var summary struct {
		Outcome           string `json:"outcome"`
		DryRun            bool   `json:"dry_run"`
		DuplicatesRemoved int    `json:"duplicates_removed"`
		Stats             struct {
			TotalFiles int `json:"total_files"`
		} `json:"stats"`
		Moves []struct {
			Destination string `json:"destination"`
		} `json:"moves"`
	}
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if summary.Outcome != "completed" || !summary.DryRun || summary.DuplicatesRemoved != 1 || summary.Stats.TotalFiles != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Moves) != 1 || filepath.Base(summary.Moves[0].Destination) != "a.mp3" {
		t.Fatalf("moves = %+v", summary.Moves)
	}

	after := testsupport.ListFiles(t, dir)
	if len(after) != len(before) {
		t.Fatalf("dry run changed tree: %v -> %v", before, after)
	}
}

func TestScanJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"package.json": "{}", "index.js": "js", "x.txt": "d", "y.txt": "d"})

	out, _, err := runCLI(t, []string{"scan", "--dir", dir, "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var preview struct {
		Project struct {
			IsProject bool     `json:"is_project"`
			Marker    string   `json:"marker"`
			Protected []string `json:"protected"`
		} `json:"project"`
		Categories []struct {
			Name  string   `json:"name"`
			Files []string `json:"files"`
		} `json:"categories"`
		Groups []struct {
			Digest string `json:"digest"`
		} `json:"groups"`
	}
	if err := json.Unmarshal([]byte(out), &preview); err != nil {
		t.Fatalf("decode preview: %v\n%s", err, out)
	}
	if !preview.Project.IsProject || preview.Project.Marker != "package.json" {
		t.Fatalf("project = %+v", preview.Project)
	}
	if len(preview.Project.Protected) != 1 || preview.Project.Protected[0] != "index.js" {
		t.Fatalf("protected = %v", preview.Project.Protected)
	}
	if len(preview.Categories) != 2 || preview.Categories[0].Name != "Programming" || preview.Categories[1].Name != "Documents" {
		t.Fatalf("categories = %+v", preview.Categories)
	}
	if len(preview.Groups) != 1 {
		t.Fatalf("groups = %+v", preview.Groups)
	}
	requireExists(t, filepath.Join(dir, "x.txt"))
	requireExists(t, filepath.Join(dir, "y.txt"))
}

func TestScanText(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()
	for i := 0; i < 7; i++ {
		writeFiles(t, dir, map[string]string{string(rune('a'+i)) + ".mp3": string(rune('a' + i))})
	}

	out, _, err := runCLI(t, []string{"scan", "-d", dir}, env.configPath, "")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Audio (7 files)")
	requireContains(t, out, "... and 2 more files")
	requireContains(t, out, "No duplicate files found.")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Lock directory:")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	requireExists(t, target)

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "", ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	_, _, err = runCLI(t, []string{"config", "validate", "--dir", filepath.Join(t.TempDir(), "missing")}, env.configPath, "")
	if err == nil {
		t.Fatal("expected validate to fail for missing target")
	}
}
