package cli

import (
	"github.com/spf13/cobra"

	"github.com/filehub/filehub-go/internal/relation"
)

func cmdCheck() *cobra.Command {
	return &cobra.Command{
		Use:   "check <user-id> <relation> <file-uuid>",
		Short: "Ask the tuple store whether a user holds a relation on a file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := relation.Parse(args[1])
			if err != nil {
				return err
			}

			d, err := buildDeps()
			if err != nil {
				return err
			}
			allowed, err := d.access.CheckAccess(cmd.Context(), args[0], rel, args[2])
			if err != nil {
				return err
			}
			return printResult(map[string]any{
				"user":     args[0],
				"relation": rel.String(),
				"file":     args[2],
				"allowed":  allowed,
			})
		},
	}
}
