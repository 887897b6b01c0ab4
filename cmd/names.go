package cmd

import (
	"github.com/goldenagents/ggdlinker/internal/namescmd"
	"github.com/spf13/cobra"
)

func newNamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Historical Dutch name parsing tools",
		Long: `Tools for the structured name parser.

Parse free-text names into given name, initials, particles, base surname,
patronym, honorific prefix and suffix, and measure parser accuracy against a
hand-checked gold set.`,
	}

	cmd.AddCommand(namescmd.NewParseCmd())
	cmd.AddCommand(namescmd.NewEvalCmd())

	return cmd
}
