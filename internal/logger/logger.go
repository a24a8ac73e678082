// Package logger builds the process logger: slog over stderr and, when a
// log directory is configured, a rotating file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const fileName = "caseprogress.log"

type Config struct {
	// LogDir is where the rotating log file lives. Empty disables it.
	LogDir string
	// Debug lowers the level to debug and mirrors output to Stderr.
	Debug bool
	JSON  bool
	// Stderr receives debug output; nil means os.Stderr.
	Stderr io.Writer
}

// New returns the logger and a closer for its file, if any. With neither a
// log directory nor debug enabled the logger discards everything.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}
	if cfg.Debug {
		writers = append(writers, stderr)
	}
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
			return nil, nil, err
		}
		file := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, fileName),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
			Compress:   true,
		}
		writers = append(writers, file)
		closer = file
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Debug,
	}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
