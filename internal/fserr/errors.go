package fserr

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPermission   = errors.New("permission denied")
	ErrNotFound     = errors.New("not found")
	ErrExists       = errors.New("already exists")
	ErrIO           = errors.New("i/o failure")
	ErrCanceled     = errors.New("canceled")
)

// Kind enumerates failure classes.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindPermission   Kind = "permission"
	KindNotFound     Kind = "not_found"
	KindExists       Kind = "exists"
	KindIO           Kind = "io"
	KindCanceled     Kind = "canceled"
)

// Wrap builds an error message that includes operation and path context while
// tagging it with the provided marker for later classification. The marker
// should be one of the exported sentinel errors above; nil selects a marker
// from the cause.
func Wrap(marker error, op, path string, err error) error {
	if marker == nil {
		marker = markerFor(Classify(err))
	}
	detail := buildDetail(op, path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an error onto a failure kind. Sentinel markers win over the
// underlying OS error.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCanceled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrPermission), errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EROFS):
		return KindPermission
	case errors.Is(err, ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, ErrExists), errors.Is(err, fs.ErrExist):
		return KindExists
	default:
		return KindIO
	}
}

func markerFor(kind Kind) error {
	switch kind {
	case KindCanceled:
		return ErrCanceled
	case KindInvalidInput:
		return ErrInvalidInput
	case KindPermission:
		return ErrPermission
	case KindNotFound:
		return ErrNotFound
	case KindExists:
		return ErrExists
	default:
		return ErrIO
	}
}

func buildDetail(op, path string) string {
	parts := make([]string, 0, 2)
	if op = strings.TrimSpace(op); op != "" {
		parts = append(parts, op)
	}
	if path = strings.TrimSpace(path); path != "" {
		parts = append(parts, path)
	}
	if len(parts) == 0 {
		return "filesystem failure"
	}
	return strings.Join(parts, " ")
}
