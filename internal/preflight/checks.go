package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"nex/internal/config"
	"nex/internal/fserr"
)

// CheckTarget expands and resolves path, then verifies it is an existing
// directory the current user can read, write and search. It returns the
// absolute path.
func CheckTarget(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fserr.Wrap(fserr.ErrInvalidInput, "check target", path, errors.New("empty path"))
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", fserr.Wrap(fserr.ErrInvalidInput, "expand target", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fserr.Wrap(fserr.ErrInvalidInput, "resolve target", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fserr.Wrap(fserr.ErrInvalidInput, "check target", abs, errors.New("does not exist"))
		}
		return "", fserr.Wrap(nil, "check target", abs, err)
	}
	if !info.IsDir() {
		return "", fserr.Wrap(fserr.ErrInvalidInput, "check target", abs, errors.New("is not a directory"))
	}
	if err := unix.Access(abs, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return "", fserr.Wrap(fserr.ErrPermission, "check target", abs, fmt.Errorf("insufficient permissions: %w", err))
	}
	return abs, nil
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
