package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"golang.org/x/term"
)

const (
	reset  = "\033[0m"
	cyan   = "\033[36m"
	blue   = "\033[34m"
	green  = "\033[32m"
	yellow = "\033[33m"
	red    = "\033[31m"
	alarm  = "\033[41m\033[37m"
)

var levelColors = map[slog.Level]string{
	levelTrace:      cyan,
	slog.LevelDebug: blue,
	slog.LevelInfo:  green,
	slog.LevelWarn:  yellow,
	slog.LevelError: red,
	levelCritical:   alarm,
}

// textHandler writes one line per record: LEVEL message key="value" ...
// Attributes added through With come after the record's own. Groups prefix
// keys with "group.".
type textHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Level
	color  bool
	prefix string
	attrs  []byte
}

func newTextHandler(w io.Writer, level slog.Level, color bool) *textHandler {
	return &textHandler{mu: &sync.Mutex{}, w: w, level: level, color: color}
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)

	name := levelName(r.Level)
	if h.color {
		name = colorize(name, r.Level)
	}
	buf = append(buf, name...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, h.prefix, a)
		return true
	})
	buf = append(buf, h.attrs...)
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.attrs = append([]byte(nil), h.attrs...)
	for _, a := range attrs {
		cp.attrs = appendAttr(cp.attrs, h.prefix, a)
	}
	return &cp
}

func (h *textHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	cp := *h
	cp.prefix = h.prefix + name + "."
	return &cp
}

func appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, inner := range a.Value.Group() {
			buf = appendAttr(buf, prefix, inner)
		}
		return buf
	}
	if a.Key == "" {
		return buf
	}

	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return strconv.AppendQuote(buf, a.Value.String())
}

func colorize(name string, level slog.Level) string {
	color, ok := levelColors[level]
	if !ok {
		switch {
		case level < slog.LevelInfo:
			color = cyan
		case level < slog.LevelWarn:
			color = green
		case level < slog.LevelError:
			color = yellow
		default:
			color = red
		}
	}
	return color + name + reset
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
