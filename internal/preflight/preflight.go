package preflight

import (
	"strings"

	"nex/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll checks the configured state directories and, when target is not
// empty, the target directory.
func RunAll(cfg *config.Config, target string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if strings.TrimSpace(target) != "" {
		if abs, err := CheckTarget(target); err != nil {
			results = append(results, Result{Name: "Target directory", Detail: err.Error()})
		} else {
			results = append(results, Result{Name: "Target directory", Passed: true, Detail: abs + " (read/write ok)"})
		}
	}

	// Lock directory (always checked)
	results = append(results, CheckDirectoryAccess("Lock directory", cfg.Paths.LockDir))

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
