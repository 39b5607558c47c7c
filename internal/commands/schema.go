package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/unilets/internal/database"
	"github.com/beesaferoot/unilets/internal/models"
	"github.com/beesaferoot/unilets/internal/schema"
)

func SchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect the live database schema",
	}
	cmd.AddCommand(SchemaInspectCmd(), SchemaForeignKeysCmd())
	return cmd
}

func SchemaForeignKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "foreign-keys",
		Short: "List the foreign keys declared by the models",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(models.ModelTypeRegistry))
			for name := range models.ModelTypeRegistry {
				names = append(names, name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			for _, name := range names {
				table, err := schema.CreateTableFromModel(models.ModelTypeRegistry[name])
				if err != nil {
					return fmt.Errorf("failed to parse model %s: %w", name, err)
				}
				for _, fk := range table.ForeignKeys() {
					fmt.Fprintln(out, fk.String())
				}
			}
			return nil
		},
	}
}

func SchemaInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "List tables and report drift from the models",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := getDB(cmd)
			if err != nil {
				return err
			}
			defer database.Close(db)

			snapshot, err := schema.Inspect(db)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-24s  %-7s  %s\n", "Table", "Columns", "Indexes")
			for _, name := range snapshot.Tables() {
				state := snapshot[name]
				fmt.Fprintf(out, "%-24s  %-7d  %s\n", name, len(state.Columns), strings.Join(state.Indexes, ", "))
			}

			missing, err := schema.Drift(snapshot, models.All()...)
			if err != nil {
				return err
			}
			if len(missing) == 0 {
				fmt.Fprintln(out, "\nSchema matches the models.")
				return nil
			}

			fmt.Fprintln(out, "\nMissing from the database:")
			for _, m := range missing {
				fmt.Fprintf(out, "- %s\n", m)
			}
			return nil
		},
	}
}
