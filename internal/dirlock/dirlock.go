// Package dirlock prevents two nex runs from reorganizing the same directory
// at once. Locks are advisory flock files kept outside the target.
package dirlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"nex/internal/fserr"
)

// ErrLocked reports that another process holds the lock for a directory.
var ErrLocked = errors.New("directory is being organized by another nex process")

// Lock is a held directory lock.
type Lock struct {
	path   string
	target string
	lock   *flock.Flock
}

// LockPath returns the lock file used for target inside lockDir.
func LockPath(lockDir, target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve target: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:])+".lock"), nil
}

// Acquire takes the lock for target without blocking. It fails with
// ErrLocked when another holder exists.
func Acquire(lockDir, target string) (*Lock, error) {
	if lockDir == "" {
		return nil, fserr.Wrap(fserr.ErrInvalidInput, "acquire lock", target, errors.New("lock directory not configured"))
	}
	path, err := LockPath(lockDir, target)
	if err != nil {
		return nil, fserr.Wrap(fserr.ErrInvalidInput, "acquire lock", target, err)
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fserr.Wrap(nil, "create lock directory", lockDir, err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fserr.Wrap(nil, "acquire lock", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, target)
	}
	return &Lock{path: path, target: target, lock: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks. The lock file stays in place so a concurrent opener never
// locks an unlinked inode. Releasing a nil lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
