// Package logging assembles structured slog loggers and formatting helpers used
// across multicam.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code tags log lines
// with the run ID, stage, and speaker automatically. NewFromConfig tees
// console output on stderr into a dated JSON log file under the configured
// log directory and prunes files older than the retention window. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
