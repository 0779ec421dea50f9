// Package logging assembles structured slog loggers and formatting helpers used
// across vencode.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so encoder and session code can
// tag log lines with session IDs, run IDs, and queue positions. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// The interactive session writes only to the log file; commands that do not
// own the terminal additionally mirror records to stderr.
package logging
