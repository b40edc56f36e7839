package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/f3rmion/pulvis/internal/llm"
	"github.com/f3rmion/pulvis/internal/render"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var englishCmd = &cobra.Command{
	Use:     "english <term>",
	Aliases: []string{"e", "eng"},
	Short:   "Find Latin words for an English term",
	Long: `Look up an English term and list, per match, the Latin words offered
for it grouped by grammatical category, with their nuances.

Example:
  pulvis english wolf
  pulvis english "to love" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEnglish,
}

func init() {
	rootCmd.AddCommand(englishCmd)
	englishCmd.Flags().Bool("json", false, "print the result as JSON")
	englishCmd.Flags().Bool("explain", false, "ask the LLM to explain the offered words")
}

func runEnglish(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	explain, _ := cmd.Flags().GetBool("explain")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	res, err := newDictionary(cfg).Reverse(ctx, strings.Join(args, " "))
	if err != nil {
		return lookupError(err)
	}

	var explanations []llm.Explanation
	if explain {
		explanations, err = newExplainer(cfg, true).ExplainReverse(ctx, res)
		if err != nil {
			log.Warn().Err(err).Msg("explanation failed")
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"result": res, "explanations": explanations}); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		return nil
	}
	fmt.Println(render.Reverse(res, explanations, 0))
	return nil
}
