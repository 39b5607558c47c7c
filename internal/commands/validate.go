package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/unilets/internal/migration"
	"github.com/beesaferoot/unilets/internal/migrations"
)

func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migration.NewMigrator(nil, migrations.All()).Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "All %d migrations are valid\n", len(migrations.All()))
			return nil
		},
	}
}
