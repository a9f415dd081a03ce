// Package stats summarizes a scan and its duplicate groups.
package stats

import (
	"nex/internal/duplicates"
	"nex/internal/scanner"
)

// Stats is the numeric summary of one scan.
type Stats struct {
	TotalFiles      int `json:"total_files"`
	Categories      int `json:"categories"`
	DuplicateGroups int `json:"duplicate_groups"`
	DuplicateFiles  int `json:"duplicate_files"`
	// ReclaimableBytes is the size of every non-keeper duplicate.
	ReclaimableBytes int64 `json:"reclaimable_bytes"`
}

// Compute derives Stats from a FileMap and its duplicate groups.
func Compute(files scanner.FileMap, groups []duplicates.Group) Stats {
	s := Stats{
		TotalFiles:      files.Total(),
		Categories:      files.Len(),
		DuplicateGroups: len(groups),
	}
	for _, g := range groups {
		if len(g.Files) < 2 {
			continue
		}
		s.DuplicateFiles += len(g.Files) - 1
		for _, f := range g.Files[1:] {
			s.ReclaimableBytes += f.Size
		}
	}
	return s
}
