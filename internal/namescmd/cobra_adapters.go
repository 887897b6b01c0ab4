package namescmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewParseCmd creates the parse command
func NewParseCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "parse NAME...",
		Short: "Parse historical Dutch names into structured parts",
		Long: `Parse each argument as a free-text name and print the structured names as YAML.

Brackets are removed, "Surname, Given" is inverted, co-listed names separated by
" / " are split, and each name is broken into given name or initials, surname
prefix, base surname, patronym, honorific prefix and suffix.`,
		Example: `  ggdlinker names parse "Vondel, Joost van den" "Hendrickje Claesdr. Stoffels"

  # With a custom rule set
  ggdlinker names parse --rules rules.yaml "Jan Jansz & Piet Pietersz"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeParse(cmd.OutOrStdout(), rulesPath, args)
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "Name parser rules file (YAML)")
	return cmd
}

// NewEvalCmd creates the eval command
func NewEvalCmd() *cobra.Command {
	var goldPath string
	var rulesPath string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Measure name parser accuracy against a gold set",
		Long: `Parse every gold case and compare the result field by field.

Scores are 1.0 for an exact match, 0.9 when only case or punctuation differ,
and a Levenshtein similarity otherwise. Results are summarized on stdout and
written as YAML to the output directory.`,
		Example: `  ggdlinker names eval --gold testdata/gold.yaml

  # Compare a candidate rule set
  ggdlinker names eval --gold gold.yaml --rules rules.yaml --output-dir evals`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if goldPath == "" {
				return fmt.Errorf("--gold is required")
			}
			_, err := executeEval(cmd.OutOrStdout(), goldPath, rulesPath, outputDir)
			return err
		},
	}

	cmd.Flags().StringVar(&goldPath, "gold", "", "Gold set file (.yaml, .json, .jsonl, .parquet)")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Name parser rules file (YAML)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "evals", "Directory for the results YAML")

	_ = cmd.MarkFlagRequired("gold")
	return cmd
}
