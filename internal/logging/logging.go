// Package logging builds the process-wide structured logger.
// Output is JSON via log/slog; when a log file is configured every line is
// also written to a size-rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string

	// File, when non-empty, is the path of the rotated log file.
	File string

	// Stdout receives log lines in addition to File. Defaults to os.Stdout.
	Stdout io.Writer
}

// New returns a JSON logger and a closer for the rotated file, if any.
// The closer is never nil.
func New(opts Options) (*slog.Logger, io.Closer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level = slog.LevelInfo
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(out, rotated)
		closer = rotated
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
