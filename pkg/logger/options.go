package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/shuldan/kernel/pkg/contracts"
)

type Option func(*settings)

type settings struct {
	level  slog.Level
	json   bool
	source bool
	color  bool
	writer io.Writer
}

func defaultSettings() *settings {
	return &settings{level: slog.LevelInfo, writer: os.Stdout}
}

func WithLevel(level slog.Level) Option {
	return func(c *settings) {
		c.level = level
	}
}

// WithLevelName sets the level from its name: trace, debug, info, warn,
// error or critical. Unknown names keep the current level.
func WithLevelName(name string) Option {
	return func(c *settings) {
		c.level = parseLevel(name, c.level)
	}
}

func WithJSON() Option {
	return func(c *settings) {
		c.json = true
	}
}

func WithText() Option {
	return func(c *settings) {
		c.json = false
	}
}

// WithSource adds the caller position. Only the JSON format prints it.
func WithSource() Option {
	return func(c *settings) {
		c.source = true
	}
}

func WithWriter(w io.Writer) Option {
	return func(c *settings) {
		if w == nil {
			w = io.Discard
		}
		c.writer = w
	}
}

// WithColor colours level names when the writer is a terminal.
func WithColor() Option {
	return func(c *settings) {
		c.color = true
	}
}

// fromConfig reads a "logger" section:
//
//	logger:
//	  level: debug
//	  json: false
//	  source: false
//	  color: true
func fromConfig(cfg contracts.Config) []Option {
	var opts []Option
	if cfg.Has("level") {
		opts = append(opts, WithLevelName(cfg.GetString("level")))
	}
	if cfg.GetBool("json", false) {
		opts = append(opts, WithJSON())
	}
	if cfg.GetBool("source", false) {
		opts = append(opts, WithSource())
	}
	if cfg.GetBool("color", false) {
		opts = append(opts, WithColor())
	}
	return opts
}
