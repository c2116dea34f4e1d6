package logger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shuldan/kernel/pkg/contracts"
)

var oddArgsWarning sync.Once

type sLogger struct {
	*slog.Logger
}

var _ contracts.Logger = (*sLogger)(nil)

// NewLogger builds a logger writing text lines, or JSON with WithJSON, to
// stdout unless WithWriter says otherwise.
func NewLogger(opts ...Option) (contracts.Logger, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(cfg)
	}

	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(cfg.writer, &slog.HandlerOptions{
			Level:       cfg.level,
			AddSource:   cfg.source,
			ReplaceAttr: replaceLevel,
		})
	} else {
		handler = newTextHandler(cfg.writer, cfg.level, cfg.color && isTerminal(cfg.writer))
	}

	return &sLogger{Logger: slog.New(handler)}, nil
}

func (l *sLogger) Trace(msg string, args ...any) {
	l.log(levelTrace, msg, args)
}

func (l *sLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args)
}

func (l *sLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args)
}

func (l *sLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args)
}

func (l *sLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args)
}

func (l *sLogger) Critical(msg string, args ...any) {
	l.log(levelCritical, msg, args)
}

func (l *sLogger) With(args ...any) contracts.Logger {
	return &sLogger{
		Logger: l.Logger.With(args...),
	}
}

func (l *sLogger) log(level slog.Level, msg string, args []any) {
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}
	l.LogAttrs(ctx, level, msg, convertArgs(args)...)
}

func convertArgs(args []any) []slog.Attr {
	if len(args)%2 != 0 {
		oddArgsWarning.Do(func() {
			slog.Warn("logger called with odd number of args", slog.Any("args", args))
		})
	}

	var attrs []slog.Attr
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			attrs = append(attrs, slog.Any("MISSING_KEY", args[i]))
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("NON_STRING_KEY_%T", args[i])
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}
	return attrs
}
