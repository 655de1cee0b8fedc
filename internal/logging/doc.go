// Package logging assembles structured slog loggers and formatting helpers used
// across episodemap.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, stamps every record of a run with its session ID, and exposes
// context-aware helpers so pipeline code can tag log lines with the season,
// episode, and correlation ID being processed. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
