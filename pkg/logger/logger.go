package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ServiceName is attached to every record written by loggers from this package
const ServiceName = "restaurant-pos"

// New creates a JSON structured logger writing to stdout at the given level.
// Unknown levels fall back to info.
func New(level string, extra ...slog.Handler) *slog.Logger {
	return NewWithWriter(os.Stdout, level, extra...)
}

// NewWithWriter creates a JSON structured logger writing to w.
// Records at or above level are also passed to every extra handler.
func NewWithWriter(w io.Writer, level string, extra ...slog.Handler) *slog.Logger {
	hostname, _ := os.Hostname()

	lvl := ParseLevel(level)
	var handler slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	if len(extra) > 0 {
		handler = &fanout{level: lvl, handlers: append([]slog.Handler{handler}, extra...)}
	}

	return slog.New(handler).With(
		slog.String("service", ServiceName),
		slog.String("hostname", hostname),
	)
}

// ParseLevel maps debug, info, warn and error to their slog levels
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanout sends each record to several handlers
type fanout struct {
	level    slog.Leveler
	handlers []slog.Handler
}

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	if level < f.level.Level() {
		return false
	}
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &fanout{level: f.level, handlers: handlers}
}

func (f *fanout) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &fanout{level: f.level, handlers: handlers}
}
