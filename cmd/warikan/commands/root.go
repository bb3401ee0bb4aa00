package commands

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "warikan",
		Short:        "Settle shared expenses with as few transfers as practical",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd(), splitCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}
