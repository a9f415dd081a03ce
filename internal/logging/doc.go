// Package logging assembles structured slog loggers and formatting helpers used
// across nex.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so every line emitted during one
// organization run carries the same run_id. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the tool.
package logging
