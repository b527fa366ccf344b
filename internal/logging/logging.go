// Package logging builds the zerolog loggers used across folio and carries
// per-request IDs through a context.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured. The CLI prints its own
// results on stdout so only warnings and errors go to stderr by default.
const DefaultLevel = "warn"

// ParseLevel maps a level name to a zerolog level. Unknown names map to warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning", "":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// New creates a console logger writing to w at the given level.
// A nil writer means stderr.
func New(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    w != os.Stderr,
	}
	return zerolog.New(output).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewJSON creates a logger emitting JSON lines, used when logs go to a file.
func NewJSON(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Silent returns a logger that discards everything.
func Silent() zerolog.Logger {
	return zerolog.Nop()
}

type rqIDKey struct{}

// WithRequestID returns a context carrying a fresh request ID. An ID already
// present in ctx is kept.
func WithRequestID(ctx context.Context) context.Context {
	if RequestID(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, rqIDKey{}, uuid.NewString())
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	rqID, ok := ctx.Value(rqIDKey{}).(string)
	if !ok {
		return ""
	}
	return rqID
}

// For returns logger annotated with the request ID from ctx.
func For(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	rqID := RequestID(ctx)
	if rqID == "" {
		return logger
	}
	return logger.With().Str("rqID", rqID).Logger()
}
