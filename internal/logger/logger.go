package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type contextKey string

const loggerKey contextKey = "logger"

// ParseLevel maps a LOG_LEVEL string to a slog.Level.
// Unknown values fall back to info; ok reports whether the value was recognised.
func ParseLevel(levelStr string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds a JSON logger writing to w with RFC3339 timestamps
func New(levelStr string, w io.Writer) *slog.Logger {
	level, _ := ParseLevel(levelStr)
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Init builds the process logger on stdout and installs it as the slog default.
// Call this once at startup, after loading config.
func Init(levelStr string) *slog.Logger {
	l := New(levelStr, os.Stdout)
	slog.SetDefault(l)

	level, ok := ParseLevel(levelStr)
	if !ok {
		l.Warn("Invalid LOG_LEVEL specified, defaulting to INFO", "configuredLevel", levelStr)
	}
	l.Info("Logger initialized", "level", level.String())
	return l
}

// FromContext retrieves a logger from context, or returns the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// ToContext embeds a slog.Logger into a context.Context.
func ToContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}
