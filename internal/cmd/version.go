package cmd

import (
	"fmt"

	"github.com/hephbuild/starconsole/internal/hversion"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), hversion.Version)

			return err
		},
	}
}
