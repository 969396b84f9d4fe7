// Package logging defines the structured logger used throughout the
// VaultBox server. Handlers and services depend on the Logger interface
// only; the slog-backed implementation below is wired in at startup.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key-value pairs:
//
//	log.Warn(ctx, "failed to delete blob", "content_ref", ref, "error", err.Error())
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions, e.g. a blob that could
	// not be reclaimed after its record was deleted.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs.
	With(args ...any) Logger
}
