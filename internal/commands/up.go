package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/unilets/internal/database"
)

func UpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			db, _, err := getDB(cmd)
			if err != nil {
				return err
			}
			defer database.Close(db)

			migrator := getMigrator(cmd, db)
			out := cmd.OutOrStdout()

			if dryRun {
				pending, err := migrator.Pending(cmd.Context())
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Fprintln(out, "No pending migrations.")
					return nil
				}
				fmt.Fprintln(out, "Pending migrations:")
				for _, mg := range pending {
					fmt.Fprintf(out, "- %s (%s)\n", mg.Name, mg.Version)
				}
				return nil
			}

			applied, err := migrator.Up(cmd.Context())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(out, "No pending migrations.")
			}
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show pending migrations without executing them")

	return cmd
}
