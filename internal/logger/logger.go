package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/polkiloo/findash/internal/config"
)

// New creates a preconfigured slog.Logger. JSON goes to stdout; the text
// format renders colored lines on stderr for interactive use.
func New(cfg *config.Config) *slog.Logger {
	if cfg == nil {
		return newJSON(os.Stdout, slog.LevelInfo)
	}
	if cfg.LogFormat == config.LogFormatText {
		return newText(os.Stderr, cfg.LogLevel)
	}
	return newJSON(os.Stdout, cfg.LogLevel)
}

func newJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func newText(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// Stderr is the logger of command-line tools: their stdout carries
// command output, so records go to stderr as text. The floor is warn; the
// default info level keeps it, and only a debug level lowers it.
func Stderr(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg != nil && cfg.LogLevel < slog.LevelInfo {
		level = cfg.LogLevel
	}
	return newText(os.Stderr, level)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
