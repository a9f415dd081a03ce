// Package organizer moves categorized files into their output folders and
// removes duplicates.
//
// Moves never overwrite: when a destination name is taken the stem gains an
// "_N" suffix until a free name is found. Renames that cross filesystems fall
// back to a verified copy. Every operation is independent; failures are
// collected in an fserr.Report and later items still run. In dry-run mode the
// organizer resolves the same destinations without touching disk.
package organizer
