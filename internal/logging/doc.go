// Package logging assembles the slog loggers used by organize.
//
// It owns the console and JSON handlers, parses level names, and exposes
// small attribute helpers plus a context-aware WithContext so every line of a
// run carries the same run identifier. The console handler prints a one-line
// header followed by indented key/value detail lines; the JSON handler emits
// one object per record with ts/level/msg keys.
//
// A no-op logger is provided for tests and for wiring code that must not fail.
package logging
