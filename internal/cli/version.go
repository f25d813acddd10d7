package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filehub/filehub-go/internal/version"
)

func cmdVersion() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if verbose {
				fmt.Fprintln(cmd.OutOrStdout(), version.Verbose())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include commit and build metadata")
	return cmd
}
