package commands

import (
	"github.com/spf13/cobra"

	"github.com/beesaferoot/unilets/internal/database"
)

func DownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")

			db, _, err := getDB(cmd)
			if err != nil {
				return err
			}
			defer database.Close(db)

			_, err = getMigrator(cmd, db).Rollback(cmd.Context(), steps)
			return err
		},
	}

	cmd.Flags().Int("steps", 1, "Number of migrations to revert")

	return cmd
}
