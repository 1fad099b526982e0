// Package logging builds the structured logger handed to the solvers.
//
// Output is JSON through log/slog. When Config.File is set the stream goes
// to a size-rotated file (lumberjack); otherwise to Config.Writer or stderr.
// Records logged with a context carrying an OpenTelemetry span get trace_id
// and span_id attributes, which ties solver logs to the spans opened by the
// tracing package.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes the logger.
type Config struct {
	Service    string    `mapstructure:"service"`
	Module     string    `mapstructure:"module"`
	Level      string    `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	File       string    `mapstructure:"file"`        // rotated log file; empty writes to Writer
	MaxSize    int       `mapstructure:"max_size"`    // megabytes per file
	MaxBackups int       `mapstructure:"max_backups"` // rotated files kept
	MaxAge     int       `mapstructure:"max_age"`     // days
	Compress   bool      `mapstructure:"compress"`
	Writer     io.Writer `mapstructure:"-"` // used when File is empty; nil means stderr
}

// Logger is a *slog.Logger that owns its output file, if any.
type Logger struct {
	*slog.Logger
	Service string
	Module  string
	file    *lumberjack.Logger
}

// TraceHandler decorates a slog.Handler with the trace and span ids of the
// record's context.
type TraceHandler struct {
	slog.Handler
}

// Handle implements slog.Handler.
func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the decorator on derived handlers.
func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the decorator on derived handlers.
func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithGroup(name)}
}

// ParseLevel maps debug/info/warn/error (any case) to a slog.Level; anything
// else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a Logger from cfg. Every record carries service and module
// attributes and uses "timestamp" as its time key.
func New(cfg Config) *Logger {
	l := &Logger{Service: cfg.Service, Module: cfg.Module}

	var w io.Writer
	switch {
	case cfg.File != "":
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		w = l.file
	case cfg.Writer != nil:
		w = cfg.Writer
	default:
		w = os.Stderr
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	})
	l.Logger = slog.New(&TraceHandler{Handler: handler}).With(
		slog.String("service", cfg.Service),
		slog.String("module", cfg.Module),
	)

	return l
}

// Close closes the rotated file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	return l.file.Close()
}
