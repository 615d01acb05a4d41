package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/be-wise-be-kind/thailint/internal/lint"
	"github.com/be-wise-be-kind/thailint/internal/magicnum"
	"github.com/be-wise-be-kind/thailint/internal/output"
	"github.com/be-wise-be-kind/thailint/internal/token"
)

var magicFormat string

var magicNumbersCmd = &cobra.Command{
	Use:   "magic-numbers [path]",
	Short: "Find numeric literals that should be named constants",
	Long: `Find numeric literals used outside constant declarations.

Numbers on the configured allowlist, values in constant declarations, and
ALL_CAPS assignments are ignored.

Examples:
  thailint magic-numbers .
  thailint magic-numbers --format=json src/`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMagicNumbers,
}

func init() {
	magicNumbersCmd.Flags().StringVar(&magicFormat, "format", "text", "Output format (json, text)")
	rootCmd.AddCommand(magicNumbersCmd)
}

func runMagicNumbers(cmd *cobra.Command, args []string) {
	root := lintRoot(args)
	cfg := mustLoadConfig(root)
	logger, cleanup := mustRunLogger(cfg, magicFormat)
	defer cleanup()

	if !token.IsAvailable() {
		fmt.Fprintf(os.Stderr, "Error: magic number detection requires CGO (tree-sitter)\n")
		fmt.Fprintf(os.Stderr, "This binary was built without CGO support.\n")
		os.Exit(2)
	}

	files := mustWalk(root, cfg, logger)

	ctx, stop := newContext()
	defer stop()

	tokenizer := token.NewTokenizer()
	checker := magicnum.NewChecker(cfg.MagicNumbers.AllowedNumbers)
	report := lint.NewReport()
	for _, f := range files {
		if ctx.Err() != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ctx.Err())
			os.Exit(2)
		}
		source, err := os.ReadFile(f.AbsPath)
		if err != nil {
			logger.Warn("skipping unreadable file", "path", f.Path, "error", err)
			continue
		}
		tokens, err := tokenizer.Tokenize(ctx, source, f.Language)
		if err != nil {
			logger.Warn("skipping unparseable file", "path", f.Path, "error", err)
			continue
		}
		report.Add(checker.Check(f.Path, tokens)...)
	}
	output.SortViolations(report.Violations)

	emitReport(report, magicFormat)
}
