package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/be-wise-be-kind/thailint/internal/lint"
	"github.com/be-wise-be-kind/thailint/internal/nesting"
	"github.com/be-wise-be-kind/thailint/internal/output"
)

var (
	nestingFormat   string
	nestingMaxDepth int
)

var nestingCmd = &cobra.Command{
	Use:   "nesting [path]",
	Short: "Find functions nested deeper than the configured limit",
	Long: `Find functions whose statements nest deeper than the configured limit.

Depth counts if/for/while/try/switch levels inside a function body; the body
itself is depth zero. Function literals are measured separately from their
enclosing function.

Examples:
  thailint nesting .
  thailint nesting --max-depth=4 src/
  thailint nesting --format=json .`,
	Args: cobra.MaximumNArgs(1),
	Run:  runNesting,
}

func init() {
	nestingCmd.Flags().StringVar(&nestingFormat, "format", "text", "Output format (json, text)")
	nestingCmd.Flags().IntVar(&nestingMaxDepth, "max-depth", 0, "Maximum allowed nesting depth (0 uses config)")
	rootCmd.AddCommand(nestingCmd)
}

func runNesting(cmd *cobra.Command, args []string) {
	root := lintRoot(args)
	cfg := mustLoadConfig(root)
	logger, cleanup := mustRunLogger(cfg, nestingFormat)
	defer cleanup()

	if !nesting.IsAvailable() {
		fmt.Fprintf(os.Stderr, "Error: nesting analysis requires CGO (tree-sitter)\n")
		fmt.Fprintf(os.Stderr, "This binary was built without CGO support.\n")
		os.Exit(2)
	}

	maxDepth := cfg.Nesting.MaxNestingDepth
	if nestingMaxDepth > 0 {
		maxDepth = nestingMaxDepth
	}

	files := mustWalk(root, cfg, logger)

	ctx, stop := newContext()
	defer stop()

	analyzer := nesting.NewAnalyzer()
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
		functions, err := analyzer.Analyze(ctx, source, f.Language)
		if err != nil {
			logger.Warn("skipping unparseable file", "path", f.Path, "error", err)
			continue
		}
		report.Add(nesting.BuildViolations(f.Path, functions, maxDepth)...)
	}
	output.SortViolations(report.Violations)

	emitReport(report, nestingFormat)
}
