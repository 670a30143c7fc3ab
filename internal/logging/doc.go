// Package logging assembles the structured slog loggers used across
// tablehash.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// exposes attribute helpers plus a no-op logger for tests and wiring code
// that cannot fail. Prefer these constructors over hand-rolled slog setup so
// every component emits log lines with the same shape.
package logging
