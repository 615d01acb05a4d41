package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/be-wise-be-kind/thailint/internal/config"
	"github.com/be-wise-be-kind/thailint/internal/dry"
	"github.com/be-wise-be-kind/thailint/internal/lint"
	"github.com/be-wise-be-kind/thailint/internal/slogutil"
	"github.com/be-wise-be-kind/thailint/internal/walker"
)

// lintRoot resolves the optional positional path argument.
func lintRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// mustLoadConfig loads and validates configuration for root, exiting on
// malformed files. Silently ignored thresholds are worse than a failed run.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.LoadConfig(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// mustRunLogger builds the logger for one command invocation. JSON runs get
// JSON logs so stderr stays machine-readable alongside the report. The
// cleanup function closes the log file, if any.
func mustRunLogger(cfg *config.Config, format string) (*slog.Logger, func()) {
	level := resolveLogLevel(cfg)

	if logFile == "" {
		return slog.New(newLogHandler(os.Stderr, format, level)), func() {}
	}

	// Quiet silences the terminal but the file still gets everything.
	if quietFlag {
		logger, f, err := slogutil.NewFileLogger(logFile, slog.LevelDebug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			os.Exit(2)
		}
		return logger, func() { _ = f.Close() }
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
		os.Exit(2)
	}
	logger := slogutil.NewTeeLogger(
		newLogHandler(os.Stderr, format, level),
		slogutil.NewLintHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	return logger, func() { _ = f.Close() }
}

func newLogHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	if format == string(FormatJSON) {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slogutil.NewLintHandler(w, &slog.HandlerOptions{Level: level})
}

// mustWalk discovers lintable files under root.
func mustWalk(root string, cfg *config.Config, logger *slog.Logger) []walker.File {
	w, err := walker.New(root, cfg.Exclude, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	files, err := w.Walk()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	return files
}

// collectInputs reads discovered files into engine inputs. Unreadable files
// are skipped so one bad file cannot abort a run.
func collectInputs(files []walker.File, logger *slog.Logger) []dry.Input {
	inputs := make([]dry.Input, 0, len(files))
	for _, f := range files {
		content, err := os.ReadFile(f.AbsPath)
		if err != nil {
			logger.Warn("skipping unreadable file", "path", f.Path, "error", err)
			continue
		}
		inputs = append(inputs, dry.Input{Path: f.Path, Language: f.Language, Content: content})
	}
	return inputs
}

// newContext creates a context cancelled by SIGINT or SIGTERM.
func newContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// emitReport prints the report and exits 1 when violations were found.
func emitReport(report *lint.Report, format string) {
	out, err := FormatReport(report, OutputFormat(format))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	fmt.Print(out)
	if report.Total > 0 {
		os.Exit(1)
	}
}
