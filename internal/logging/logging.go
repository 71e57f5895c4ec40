// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Config holds logger settings
type Config struct {
	Debug bool
	// Writer defaults to os.Stderr
	Writer io.Writer
	// NoColor disables ANSI colors, e.g. when output is not a terminal
	NoColor bool
}

// New builds a tint-backed logger.
// Debug lowers the level to debug and adds source locations.
func New(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  cfg.Debug,
		TimeFormat: time.Kitchen,
		NoColor:    cfg.NoColor,
	}))
}

// Setup installs the logger built from cfg as the slog default and returns it.
func Setup(cfg Config) *slog.Logger {
	logger := New(cfg)
	slog.SetDefault(logger)
	return logger
}
