package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/filehub/filehub-go/internal/access"
)

// parseAssignments turns "bob:viewer carol:editor" args into assignments.
func parseAssignments(args []string) ([]access.Assignment, error) {
	out := make([]access.Assignment, 0, len(args))
	for _, a := range args {
		user, rel, ok := strings.Cut(a, ":")
		if !ok || user == "" || rel == "" {
			return nil, fmt.Errorf("bad assignment %q, want <user-id>:<relation>", a)
		}
		out = append(out, access.Assignment{UserID: user, Relation: rel})
	}
	return out, nil
}

func cmdGrant() *cobra.Command {
	return &cobra.Command{
		Use:   "grant <file-uuid> <user-id>:<relation> [...]",
		Short: "Grant relations on a file as one atomic batch",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			d, err := buildDeps()
			if err != nil {
				return err
			}
			if err := d.access.GrantRelations(cmd.Context(), args[0], assignments); err != nil {
				return err
			}
			return printResult(map[string]any{"file": args[0], "granted": assignments})
		},
	}
}

func cmdRevoke() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "revoke <file-uuid> [<user-id>:<relation> ...]",
		Short: "Revoke relations on a file, or every tuple with --all",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}

			if all {
				if len(args) > 1 {
					return fmt.Errorf("--all takes no assignments")
				}
				if err := d.access.RevokeAllForFile(cmd.Context(), args[0]); err != nil {
					return err
				}
				return printResult(map[string]any{"file": args[0], "revoked": "all"})
			}

			if len(args) < 2 {
				return fmt.Errorf("need at least one <user-id>:<relation> assignment or --all")
			}
			assignments, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			if err := d.access.RevokeRelations(cmd.Context(), args[0], assignments); err != nil {
				return err
			}
			return printResult(map[string]any{"file": args[0], "revoked": assignments})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "revoke every assignable-relation tuple for the file")
	return cmd
}
