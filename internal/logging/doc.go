// Package logging constructs the slog loggers used across mediakit. It
// centralizes level parsing, handler selection (text or JSON), and the
// optional log file, and provides a no-op logger for tests. The core never
// writes to stdout directly; everything goes through a logger built here.
package logging
