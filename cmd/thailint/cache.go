package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/be-wise-be-kind/thailint/internal/cache"
	"github.com/be-wise-be-kind/thailint/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the duplicate-detection cache",
	Long: `Manage the persistent cache used by 'thailint dry'.

The cache stores token streams and window hashes keyed by file content hash,
so unchanged files skip tokenization on later runs.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats [path]",
	Short: "Show cache location, entry count, and size",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [path]",
	Short: "Remove all cache entries",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// cacheDBPath resolves the configured cache path against the lint root.
func cacheDBPath(root string, cfg *config.Config) string {
	dbPath := cfg.Dry.CachePath
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(root, dbPath)
	}
	return dbPath
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	root := lintRoot(args)
	cfg := mustLoadConfig(root)

	dbPath := cacheDBPath(root, cfg)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Printf("No cache at %s\n", dbPath)
		return nil
	}

	backend, err := cache.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer backend.Close()

	entries, err := backend.Len()
	if err != nil {
		return fmt.Errorf("reading cache: %w", err)
	}
	size, err := backend.SizeBytes()
	if err != nil {
		return fmt.Errorf("reading cache size: %w", err)
	}

	fmt.Printf("Cache: %s\n", backend.Path())
	fmt.Printf("Entries: %d\n", entries)
	fmt.Printf("Size: %s\n", formatBytes(size))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	root := lintRoot(args)
	cfg := mustLoadConfig(root)

	dbPath := cacheDBPath(root, cfg)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Printf("No cache at %s\n", dbPath)
		return nil
	}

	backend, err := cache.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer backend.Close()

	if err := backend.Clear(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	fmt.Println("Cache cleared.")
	return nil
}
