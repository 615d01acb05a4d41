package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/be-wise-be-kind/thailint/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .thailint.yaml",
	Long:  "Creates a .thailint.yaml with default settings in the current directory",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing .thailint.yaml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	configPath := filepath.Join(cwd, ".thailint.yaml")
	if _, statErr := os.Stat(configPath); statErr == nil && !initForce {
		// Already initialized is success (CI-friendly)
		fmt.Println("thailint already initialized.")
		fmt.Printf("Config file: %s\n", configPath)
		fmt.Println("\nRun 'thailint init --force' to overwrite.")
		return nil
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	content := append([]byte("# thailint configuration. Remove keys to fall back to defaults.\n"), data...)

	if writeErr := os.WriteFile(configPath, content, 0644); writeErr != nil {
		return fmt.Errorf("writing config: %w", writeErr)
	}

	fmt.Println("thailint initialized.")
	fmt.Printf("Wrote %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Adjust thresholds in .thailint.yaml")
	fmt.Println("  2. Run 'thailint dry .' to find duplicate code")
	return nil
}
