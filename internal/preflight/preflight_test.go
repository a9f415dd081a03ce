package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nex/internal/fserr"
	"nex/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckTargetResolvesAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testsupport.Mkdirs(t, dir, "inbox")

	got, err := CheckTarget("inbox")
	if err != nil {
		t.Fatalf("CheckTarget: %v", err)
	}
	want, _ := filepath.EvalSymlinks(filepath.Join(dir, "inbox"))
	if resolved, _ := filepath.EvalSymlinks(got); resolved != want || !filepath.IsAbs(got) {
		t.Fatalf("CheckTarget = %s, want %s", got, want)
	}
}

func TestCheckTargetExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	testsupport.Mkdirs(t, home, "Downloads")

	got, err := CheckTarget("~/Downloads")
	if err != nil {
		t.Fatalf("CheckTarget: %v", err)
	}
	if got != filepath.Join(home, "Downloads") {
		t.Fatalf("CheckTarget = %s", got)
	}
}

func TestCheckTargetRejectsInvalidInput(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	testsupport.WriteTree(t, dir, map[string]string{"file.txt": "x"})

	for _, path := range []string{"", "   ", filepath.Join(dir, "missing"), file} {
		_, err := CheckTarget(path)
		if !errors.Is(err, fserr.ErrInvalidInput) {
			t.Fatalf("CheckTarget(%q) = %v, want invalid input", path, err)
		}
	}
}

func TestCheckTargetPermission(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := filepath.Join(t.TempDir(), "readonly")
	if err := os.Mkdir(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := CheckTarget(dir)
	if !errors.Is(err, fserr.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil, ""); results != nil {
		t.Fatalf("expected nil results, got %v", results)
	}
}

func TestRunAll_ChecksTargetAndStateDirs(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithLogDir())
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	results := RunAll(cfg, t.TempDir())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !Passed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}

	results = RunAll(cfg, filepath.Join(t.TempDir(), "gone"))
	if Passed(results) {
		t.Fatal("expected missing target to fail")
	}
	if !strings.Contains(results[0].Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", results[0].Detail)
	}
}
