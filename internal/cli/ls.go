package cli

import (
	"github.com/spf13/cobra"

	"github.com/filehub/filehub-go/internal/relation"
)

func cmdLs() *cobra.Command {
	var relFlag string

	cmd := &cobra.Command{
		Use:   "ls <user-id>",
		Short: "List the files a user can access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := relation.Parse(relFlag)
			if err != nil {
				return err
			}

			d, err := buildDeps()
			if err != nil {
				return err
			}
			ids, err := d.access.ListAccessibleFiles(cmd.Context(), args[0], rel)
			if err != nil {
				return err
			}
			records, err := d.files.List(cmd.Context(), ids)
			if err != nil {
				return err
			}
			return printResult(map[string]any{
				"user":     args[0],
				"relation": rel.String(),
				"files":    records,
			})
		},
	}

	cmd.Flags().StringVar(&relFlag, "relation", relation.CanView.String(), "relation to list by")
	return cmd
}
