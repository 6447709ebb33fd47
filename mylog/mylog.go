// Package mylog provides small helpers around log/slog: safe defaults,
// context plumbing, and a capturing handler for tests.
package mylog

import (
	"context"
	"log/slog"
	"strings"
)

type ctxKey struct{}

// OrDefault returns lg unless it is nil, in which case a discard logger is
// returned. Callers can chain it without checking for nil first.
func OrDefault(lg *slog.Logger) *slog.Logger {
	if lg != nil {
		return lg
	}
	return NewDiscardLogger()
}

// NewDiscardLogger returns a logger that drops every record.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// WithLogger returns a context carrying lg.
func WithLogger(ctx context.Context, lg *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, lg)
}

// LoggerFromContext returns the logger stored in ctx, or a discard logger
// when none is present. The result is never nil.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if lg, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && lg != nil {
			return lg
		}
	}
	return NewDiscardLogger()
}

// ParseLevel maps a textual level to a slog.Level. Unknown values fall back
// to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
