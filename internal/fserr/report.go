package fserr

import (
	"errors"
	"fmt"
)

// Failure records one recoverable per-item failure.
type Failure struct {
	Op   string `json:"op"`
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
	Err  error  `json:"-"`
}

func (f Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s %s: %s", f.Op, f.Path, f.Kind)
	}
	return fmt.Sprintf("%s %s: %v", f.Op, f.Path, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report accumulates failures in the order they occurred. The zero value is
// ready to use; a nil *Report reports no failures.
type Report struct {
	failures []Failure
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add records a failure for path and returns it.
func (r *Report) Add(op, path string, err error) Failure {
	f := Failure{Op: op, Path: path, Kind: Classify(err), Err: err}
	r.failures = append(r.failures, f)
	return f
}

// Merge appends the failures of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.failures = append(r.failures, other.failures...)
}

// Failures returns a copy of the recorded failures.
func (r *Report) Failures() []Failure {
	if r == nil || len(r.failures) == 0 {
		return nil
	}
	out := make([]Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

// Len returns the number of failures.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.failures)
}

// Err joins every failure into one error, or returns nil when empty.
func (r *Report) Err() error {
	if r.Len() == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.failures))
	for _, f := range r.failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}
