package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/pulvis/internal/config"
	"github.com/f3rmion/pulvis/internal/history"
	"github.com/f3rmion/pulvis/internal/tui"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch the interactive session",
	Long: `Launch an interactive terminal session for looking words up.

Commands:
  @latin, @l [word]   Latin to English mode (default), optionally look word up
  @eng, @e [term]     English to Latin mode, optionally look term up
  @hist [key]         List remembered lookups, or show one again
  @gpt y|n            Toggle LLM explanations
  @copy               Copy the current output to the clipboard
  @anki <file>        Export remembered lookups (.apkg package or text file)
  @quit               Leave the session

In Latin mode type word or word,variant. When a word is ambiguous, type the
number of a candidate to choose it. Repeated queries are answered from
the session history.

Controls:
  Enter          Submit
  PgUp/PgDn      Scroll output
  Esc            Quit`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	interactiveCmd.Flags().Bool("explain", false, "start with LLM explanations on")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Log lines would tear the alternate screen apart; send them to a file.
	configDir := getConfigDir()
	if err := config.EnsureConfigDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(configDir, "pulvis.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	setupLogging(logFile)

	hist, err := history.New[tui.Result](cfg.History.Capacity)
	if err != nil {
		return err
	}
	defer hist.Close()

	// The root command runs this without the flag defined.
	explain, _ := cmd.Flags().GetBool("explain")

	opts := tui.Options{
		Dict:      newDictionary(cfg),
		Explainer: newExplainer(cfg, explain),
		History:   hist,
		Explain:   explain || cfg.Explainer.Enabled,
	}
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
