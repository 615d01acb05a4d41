// Package slogutil configures log/slog for thailint commands: a compact
// text handler for terminals, tee fan-out for --log-file runs, and level
// resolution from flags and config.
package slogutil

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelSilent sits above every level a record can carry. Quiet mode uses
// it to drop all terminal output.
const LevelSilent = slog.Level(100)

// NewLogger creates a logger with the line format of LintHandler.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewLintHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewFileLogger creates a logger appending to the file at path, creating
// it if needed. The caller owns closing the returned file.
func NewFileLogger(path string, level slog.Level) (*slog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(f, level), f, nil
}

// NewDiscardLogger creates a logger that drops everything. Tests hand it
// to components that want a *slog.Logger.
func NewDiscardLogger() *slog.Logger {
	return NewLogger(io.Discard, LevelSilent)
}

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// LevelFromString resolves a config file's logging.level value. Unknown
// strings fall back to info.
func LevelFromString(s string) slog.Level {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l
	}
	return slog.LevelInfo
}

// LevelFromVerbosity maps -v counts to a level: warn by default, info at
// -v, debug at -vv and beyond. Quiet wins over any verbosity.
func LevelFromVerbosity(verbosity int, quiet bool) slog.Level {
	if quiet {
		return LevelSilent
	}
	if verbosity >= 2 {
		return slog.LevelDebug
	}
	if verbosity == 1 {
		return slog.LevelInfo
	}
	return slog.LevelWarn
}
