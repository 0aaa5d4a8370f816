// Package logging configures zerolog loggers and carries trace IDs through contexts.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Supported output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name; unknown values fall back to info.
	Level string `yaml:"level" json:"level"`

	// Format is "console" (human-readable) or "json".
	Format string `yaml:"format" json:"format"`

	// Output defaults to os.Stderr.
	Output io.Writer `yaml:"-" json:"-"`
}

// NewLogger builds a logger from cfg.
func NewLogger(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if !strings.EqualFold(cfg.Format, FormatJSON) {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// ComponentLogger returns a child logger tagged with component.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

type traceIDKey struct{}

// ContextWithTraceID stores traceID in ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GetOrGenerateTraceID returns the trace ID in ctx or a new ULID.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return NewID()
}

// NewID returns a new lexically sortable identifier.
func NewID() string {
	return ulid.Make().String()
}

// FromContext returns the logger attached to ctx, or a disabled logger.
// When ctx carries a trace ID it is added as the trace_id field.
func FromContext(ctx context.Context) zerolog.Logger {
	logger := *zerolog.Ctx(ctx)
	if id := TraceIDFromContext(ctx); id != "" {
		logger = logger.With().Str("trace_id", id).Logger()
	}
	return logger
}
