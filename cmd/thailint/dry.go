package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/be-wise-be-kind/thailint/internal/cache"
	"github.com/be-wise-be-kind/thailint/internal/config"
	"github.com/be-wise-be-kind/thailint/internal/dry"
	"github.com/be-wise-be-kind/thailint/internal/token"
)

var (
	dryFormat  string
	dryNoCache bool
)

var dryCmd = &cobra.Command{
	Use:   "dry [path]",
	Short: "Find duplicate code across files",
	Long: `Find duplicate code by hashing token windows across a project.

Token streams come from tree-sitter, so duplicates match on code structure
rather than raw text; comments and blank lines never count. Unchanged files
are served from a content-hash cache on repeat runs.

Examples:
  thailint dry .
  thailint dry --format=json src/
  thailint dry --no-cache .`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDry,
}

func init() {
	dryCmd.Flags().StringVar(&dryFormat, "format", "text", "Output format (json, text)")
	dryCmd.Flags().BoolVar(&dryNoCache, "no-cache", false, "Tokenize every file, ignoring the cache")
	rootCmd.AddCommand(dryCmd)
}

func runDry(cmd *cobra.Command, args []string) {
	root := lintRoot(args)
	cfg := mustLoadConfig(root)
	logger, cleanup := mustRunLogger(cfg, dryFormat)
	defer cleanup()

	if !token.IsAvailable() {
		fmt.Fprintf(os.Stderr, "Error: duplicate detection requires CGO (tree-sitter)\n")
		fmt.Fprintf(os.Stderr, "This binary was built without CGO support.\n")
		os.Exit(2)
	}

	files := mustWalk(root, cfg, logger)
	inputs := collectInputs(files, logger)

	var store *cache.Store
	if cfg.Dry.CacheEnabled && !dryNoCache {
		store = openStore(root, cfg, logger)
		defer func() { _ = store.Close() }()
	}

	engine := dry.NewEngine(cfg.DryEngine(), newTokenizer, store, logger)

	ctx, stop := newContext()
	defer stop()

	report, err := engine.Run(ctx, inputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	emitReport(report, dryFormat)
}

// newTokenizer is the engine's per-worker tokenizer factory. Tree-sitter
// parsers are not safe for concurrent use, so each worker gets its own.
func newTokenizer() dry.Tokenizer {
	return token.NewTokenizer()
}

// openStore opens the persistent duplicate cache. SQLite failures degrade to
// an in-memory store so cache trouble never aborts a run.
func openStore(root string, cfg *config.Config, logger *slog.Logger) *cache.Store {
	dbPath := cacheDBPath(root, cfg)

	backend, err := cache.OpenSQLite(dbPath)
	if err != nil {
		logger.Warn("cache unavailable, running without persistence", "path", dbPath, "error", err)
		return cache.NewStore(cache.NewMemory(), cfg.CacheMaxAge(), logger)
	}
	return cache.NewStore(backend, cfg.CacheMaxAge(), logger)
}
