package convertcmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConvertCmd creates the convert command
func NewConvertCmd() *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a GGD dump to an RDF graph",
		Long: `Convert the GGD flat-file dump to Turtle or N-Triples.

Names are resolved against the authority link table (record id + name -> URI).
KB thesaurus and VIAF URIs become identifiers outright; other links are kept as
owl:sameAs, as are the cross-references (--crossrefs). Without a primary link, authors and printers get sequential
identifiers and persons get content-hash identifiers. Use --reproducible to make
every minted identifier hash-backed and independent of record order.

Settings can also come from a YAML config file (--config) and GGD_* environment
variables; flags win.`,
		Example: `  # Convert with authority links
  ggdlinker convert --input ggd.dmp --output ggd.ttl --links links.parquet

  # N-Triples with hints from an earlier run, reproducible identifiers
  ggdlinker convert --input ggd.dmp --output ggd.nt --hints hints.jsonl --reproducible`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Input == "" {
				return fmt.Errorf("--input is required")
			}
			opts.formatSet = cmd.Flags().Changed("format")
			opts.reproducibleSet = cmd.Flags().Changed("reproducible")

			_, err := executeConvert(cmd.Context(), opts)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Path to the GGD dump (- for stdin)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output graph file (stdout if empty)")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to YAML config file")
	cmd.Flags().StringVar(&opts.LinksPath, "links", "", "Authority link table (.parquet, .jsonl, .json, .yaml)")
	cmd.Flags().StringVar(&opts.CrossRefsPath, "crossrefs", "", "Cross-reference table in the link layout (.parquet, .jsonl, .json, .yaml)")
	cmd.Flags().StringVar(&opts.HintsPath, "hints", "", "Same-entity hint table (.parquet, .jsonl, .json, .yaml)")
	cmd.Flags().StringVar(&opts.RulesPath, "rules", "", "Name parser rules file (YAML)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "turtle", "Output format (turtle or ntriples); defaults to the output extension")
	cmd.Flags().BoolVar(&opts.Reproducible, "reproducible", false, "Mint hash-backed identifiers for every category")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on the first invalid or unconvertible record instead of skipping it")

	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// NewRecordsCmd creates the records command
func NewRecordsCmd() *cobra.Command {
	var input, output string
	var strict bool

	cmd := &cobra.Command{
		Use:   "records",
		Short: "Write the normalized GGD records as JSON",
		Long: `Read the GGD dump and write every normalized record as a JSON array.

Multi-valued fields are split, dates converted to ISO, event dates expanded to
ranges, person roles split off and holdings listed per archive.`,
		Example: `  ggdlinker records --input ggd.dmp --output ggd.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("--input is required")
			}
			_, err := executeRecords(cmd.Context(), input, output, strict)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to the GGD dump (- for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output JSON file (stdout if empty)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first invalid record instead of skipping it")

	_ = cmd.MarkFlagRequired("input")
	return cmd
}
