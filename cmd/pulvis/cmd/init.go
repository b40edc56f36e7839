package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/pulvis/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize pulvis configuration",
	Long: `Initialize the pulvis configuration file in your config directory.

This creates config.yaml holding:
  - source     (dictionary site URLs, user agent, request rate)
  - markers    (CSS classes the page parser depends on)
  - explainer  (LLM explanations)
  - history    (interactive session history size)
  - server     (listen address of 'pulvis serve')`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureConfigDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	fmt.Printf("Created %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Set explainer.enabled and ANTHROPIC_API_KEY for LLM explanations")
	fmt.Println("  2. Run 'pulvis latin amo' to test a lookup")
	fmt.Println("  3. Run 'pulvis' for the interactive session")
	return nil
}
