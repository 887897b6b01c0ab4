package cmd

import (
	"github.com/goldenagents/ggdlinker/internal/convertcmd"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	return convertcmd.NewConvertCmd()
}

func newRecordsCmd() *cobra.Command {
	return convertcmd.NewRecordsCmd()
}
