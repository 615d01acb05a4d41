package main

import (
	"log/slog"

	"github.com/be-wise-be-kind/thailint/internal/config"
	"github.com/be-wise-be-kind/thailint/internal/slogutil"
	"github.com/be-wise-be-kind/thailint/internal/version"

	"github.com/spf13/cobra"
)

var (
	// verbosity counts -v occurrences; one means info, two or more debug
	verbosity int
	quietFlag bool
	logFile   string
)

var rootCmd = &cobra.Command{
	Use:   "thailint",
	Short: "thailint - multi-language code quality linter",
	Long: `thailint finds duplicate code, excessive nesting, and magic numbers in
Python, Go, TypeScript, JavaScript, TSX, Rust, Java, and Kotlin sources.

Duplicate detection hashes token windows produced by tree-sitter, so matches
survive formatting and comment differences. Token streams are cached per file
content hash to keep repeat runs fast.`,
	Version: version.Info(),
}

func init() {
	rootCmd.SetVersionTemplate("thailint version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false,
		"Suppress log output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Mirror logs to a file at debug level")
}

// resolveLogLevel determines the effective log level for terminal output.
// Precedence: -q or -v flags > logging.level in config > warn
func resolveLogLevel(cfg *config.Config) slog.Level {
	if quietFlag || verbosity > 0 {
		return slogutil.LevelFromVerbosity(verbosity, quietFlag)
	}
	if cfg != nil && cfg.Logging.Level != "" {
		return slogutil.LevelFromString(cfg.Logging.Level)
	}
	return slog.LevelWarn
}
