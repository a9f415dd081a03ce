// Package workflow runs one organize pass over a target directory.
//
// The Runner chains the stages in a fixed order: preflight and directory
// lock, project detection, scan, per-category confirmation, duplicate
// detection and removal, then moves. Every decision point goes through the
// Prompter so the same flow serves the interactive CLI, the --yes mode and
// tests. Stages exchange plain values (FileMap, groups, move records); the
// Runner keeps no state between runs.
//
// Preview performs the read-only half of the flow for "nex scan".
package workflow
