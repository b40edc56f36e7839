package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/llm"
	"github.com/f3rmion/pulvis/internal/render"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var latinCmd = &cobra.Command{
	Use:     "latin <word>[,<variant>]",
	Aliases: []string{"l"},
	Short:   "Look up a Latin word",
	Long: `Look up a Latin word and display its:
  - Headword and grammatical class
  - English meanings
  - Related entries (see also)
  - Conjugation or declension tables

When the word is ambiguous the candidates are listed; choose one with --pick
or repeat the lookup with its variant number.

Example:
  pulvis latin amo
  pulvis latin latus,200
  pulvis latin latus --pick 2`,
	Args: cobra.ExactArgs(1),
	RunE: runLatin,
}

var errAmbiguous = errors.New("word is ambiguous")

func init() {
	rootCmd.AddCommand(latinCmd)
	latinCmd.Flags().Bool("json", false, "print the entry as JSON")
	latinCmd.Flags().Int("pick", 0, "choose the n-th candidate of an ambiguous word")
	latinCmd.Flags().Bool("explain", false, "ask the LLM to explain the entry")
}

func runLatin(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	pick, _ := cmd.Flags().GetInt("pick")
	explain, _ := cmd.Flags().GetBool("explain")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d := newDictionary(cfg)
	ctx := cmd.Context()

	entry, err := d.Lookup(ctx, latin.ParseLocator(args[0]))
	if err != nil {
		return lookupError(err)
	}

	if entry.RequiresClarification && pick > 0 {
		if pick > len(entry.Candidates) {
			return fmt.Errorf("--pick %d: only %d candidates", pick, len(entry.Candidates))
		}
		entry, err = d.Lookup(ctx, entry.Candidates[pick-1].Locator)
		if err != nil {
			return lookupError(err)
		}
	}

	var explanations []llm.Explanation
	if explain && !entry.RequiresClarification {
		explanations, err = newExplainer(cfg, true).ExplainEntry(ctx, entry)
		if err != nil {
			log.Warn().Err(err).Msg("explanation failed")
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"entry": entry, "explanations": explanations}); err != nil {
			return fmt.Errorf("encoding entry: %w", err)
		}
	} else {
		fmt.Println(render.Forward(entry, explanations, 0))
	}

	if entry.RequiresClarification {
		return errAmbiguous
	}
	return nil
}

// lookupError prints the friendly not-found message and passes errors on.
func lookupError(err error) error {
	if errors.Is(err, latin.ErrNotFound) {
		fmt.Fprintln(os.Stderr, render.Error("given word can not be found"))
	}
	return err
}
