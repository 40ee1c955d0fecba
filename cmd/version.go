package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/tokenviz/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tokenviz "+version.GetFullVersion())
		},
	}
}
