package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "ggdlinker",
		Short: "Convert the Gelegenheidsgedichten dump to linked data",
		Long: `ggdlinker converts the GGD (occasional poems) bibliographic dump into an RDF graph.

Every author, printer and person mention is resolved to one stable identifier,
preferring KB thesaurus and VIAF authority links and minting identifiers otherwise.
Names are parsed into structured historical Dutch name parts.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			logLevel := slog.LevelInfo
			if verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
			slog.SetDefault(logger)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newRecordsCmd())
	cmd.AddCommand(newNamesCmd())

	return cmd
}
