package project

import (
	"os"
	"path/filepath"
	"testing"

	"nex/internal/testsupport"
)

func TestDetectMarkerFile(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTree(t, dir, map[string]string{"Cargo.toml": "[package]\n", "song.mp3": "x"})

	d := NewDetector(Options{})
	ok, err := d.Detect(dir)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !ok {
		t.Fatal("expected Cargo.toml to mark a project")
	}
}

func TestDetectConventionalDirectories(t *testing.T) {
	tests := []struct {
		name string
		dirs []string
		want bool
	}{
		{"none", nil, false},
		{"src only", []string{"src"}, false},
		{"tests only", []string{"tests"}, false},
		{"src and tests", []string{"src", "tests"}, true},
		{"docs and dist", []string{"docs", "dist"}, true},
		{"unrelated dirs", []string{"photos", "music"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testsupport.Mkdirs(t, dir, tt.dirs...)
			got, err := NewDetector(Options{}).Detect(dir)
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectIgnoresFilesNamedLikeDirectories(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTree(t, dir, map[string]string{"src": "file", "tests": "file"})
	got, err := NewDetector(Options{}).Detect(dir)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if got {
		t.Fatal("plain files named src/tests must not mark a project")
	}
}

func TestDetectDisabled(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTree(t, dir, map[string]string{"package.json": "{}", "README.md": "x"})
	d := NewDetector(Options{Disabled: true})
	res, err := d.Inspect(dir)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if res.IsProject || len(res.Protected) != 0 {
		t.Fatalf("expected detection disabled, got %+v", res)
	}
}

func TestProtectedFiles(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTree(t, dir, map[string]string{
		"package.json":      "{}",
		"README.md":         "readme",
		"LICENSE":           "mit",
		"index.js":          "js",
		".env":              "A=1",
		".prettierrc":       "{}",
		"webpack.Config.js": "cfg",
		"run.py":            "print()",
		"tool.py":           "print()",
		"deploy.sh":         "echo",
		"photo.jpg":         "img",
	})
	testsupport.Mkdirs(t, dir, "config.d")
	if err := os.Chmod(filepath.Join(dir, "run.py"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(filepath.Join(dir, "deploy.sh"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := NewDetector(Options{}).Inspect(dir)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !res.IsProject || res.Marker != "package.json" {
		t.Fatalf("unexpected detection: %+v", res)
	}

	wantProtected := []string{".env", ".prettierrc", "LICENSE", "README.md", "index.js", "run.py", "webpack.Config.js"}
	for _, name := range wantProtected {
		if !res.Protected.Contains(filepath.Join(dir, name)) {
			t.Errorf("expected %s to be protected", name)
		}
	}
	for _, name := range []string{"tool.py", "deploy.sh", "photo.jpg", "package.json", "config.d"} {
		if res.Protected.Contains(filepath.Join(dir, name)) {
			t.Errorf("did not expect %s to be protected", name)
		}
	}
	if len(res.Protected) != len(wantProtected) {
		t.Fatalf("unexpected protected set: %v", res.Protected.Sorted())
	}
}

func TestProtectedFilesUsesConfiguredScriptExtensions(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTree(t, dir, map[string]string{"Makefile": "all:", "deploy.sh": "echo", "run.py": "print()"})
	for _, name := range []string{"deploy.sh", "run.py"} {
		if err := os.Chmod(filepath.Join(dir, name), 0o744); err != nil {
			t.Fatal(err)
		}
	}

	protected, err := NewDetector(Options{ScriptExtensions: []string{".SH"}}).ProtectedFiles(dir)
	if err != nil {
		t.Fatalf("ProtectedFiles: %v", err)
	}
	if !protected.Contains(filepath.Join(dir, "deploy.sh")) {
		t.Fatal("expected executable shell script to be protected")
	}
	if protected.Contains(filepath.Join(dir, "run.py")) {
		t.Fatal("py is not in the configured list and must not be protected")
	}
}

func TestProtectedFilesEmptyOutsideProjects(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTree(t, dir, map[string]string{"README.md": "x", ".hidden": "y"})
	protected, err := NewDetector(Options{}).ProtectedFiles(dir)
	if err != nil {
		t.Fatalf("ProtectedFiles: %v", err)
	}
	if len(protected) != 0 {
		t.Fatalf("expected no protected files, got %v", protected.Sorted())
	}
}

func TestInspectIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTree(t, dir, map[string]string{"Dockerfile": "FROM scratch", "main.go": "package main", "notes.txt": "n"})
	d := NewDetector(Options{})
	first, err := d.Inspect(dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := d.Inspect(dir)
	if err != nil {
		t.Fatal(err)
	}
	a, b := first.Protected.Sorted(), second.Protected.Sorted()
	if len(a) != len(b) {
		t.Fatalf("protected sets differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("protected sets differ: %v vs %v", a, b)
		}
	}
}

func TestInspectRelativeDirectoryYieldsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTree(t, dir, map[string]string{"Cargo.toml": "[package]\n", "README.md": "r", "song.mp3": "s"})
	t.Chdir(dir)

	result, err := NewDetector(Options{}).Inspect(".")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !result.IsProject {
		t.Fatal("expected a project")
	}
	want := filepath.Join(dir, "README.md")
	if !result.Protected.Contains(want) {
		t.Fatalf("protected = %v, want it to contain %s", result.Protected.Sorted(), want)
	}
	for _, path := range result.Protected.Sorted() {
		if !filepath.IsAbs(path) {
			t.Fatalf("protected path %q is not absolute", path)
		}
	}

	set, err := NewDetector(Options{}).ProtectedFiles(".")
	if err != nil {
		t.Fatalf("ProtectedFiles: %v", err)
	}
	if !set.Contains(want) {
		t.Fatalf("ProtectedFiles = %v, want it to contain %s", set.Sorted(), want)
	}
}
