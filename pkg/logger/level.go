package logger

import (
	"log/slog"
	"strings"
)

const (
	levelTrace    = slog.LevelDebug - 4
	levelCritical = slog.LevelError + 4
)

func levelName(level slog.Level) string {
	switch level {
	case levelTrace:
		return "TRACE"
	case levelCritical:
		return "CRITICAL"
	}
	return level.String()
}

// replaceLevel renders the custom levels by name in slog's own handlers.
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok {
		return slog.String(slog.LevelKey, levelName(level))
	}
	return a
}

func parseLevel(name string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return levelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical":
		return levelCritical
	default:
		return fallback
	}
}
