package dirlock

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAcquireBlocksSecondHolder(t *testing.T) {
	lockDir := filepath.Join(t.TempDir(), "locks")
	target := t.TempDir()

	first, err := Acquire(lockDir, target)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !strings.HasPrefix(first.Path(), lockDir) {
		t.Fatalf("lock file %s outside lock dir", first.Path())
	}
	if strings.HasPrefix(first.Path(), target) {
		t.Fatal("lock file must not live in the target")
	}

	if _, err := Acquire(lockDir, target); !errors.Is(err, ErrLocked) {
		t.Fatalf("second Acquire error = %v, want ErrLocked", err)
	}

	// A different directory has its own lock.
	other, err := Acquire(lockDir, t.TempDir())
	if err != nil {
		t.Fatalf("Acquire other: %v", err)
	}
	defer other.Release()

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(first.Path()); err != nil {
		t.Fatalf("lock file missing after release: %v", err)
	}

	again, err := Acquire(lockDir, target)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if err := again.Release(); err != nil {
		t.Fatal(err)
	}
}

func TestLockPathIsStable(t *testing.T) {
	a, err := LockPath("/locks", "/data/inbox")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := LockPath("/locks", "/data/inbox/")
	if a != b {
		t.Fatalf("paths differ: %s vs %s", a, b)
	}
	c, _ := LockPath("/locks", "/data/other")
	if a == c {
		t.Fatal("different targets must not share a lock")
	}
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Fatalf("Release(nil) = %v", err)
	}
}

func TestAcquireRequiresLockDir(t *testing.T) {
	if _, err := Acquire("", t.TempDir()); err == nil {
		t.Fatal("expected error without lock dir")
	}
}
