package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/unilets/internal/database"
	"github.com/beesaferoot/unilets/internal/seeds"
)

func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference and demo data",
	}
	cmd.AddCommand(SeedRunCmd(), SeedListCmd())
	return cmd
}

func SeedRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [names...]",
		Short: "Run seeds in order (all when no names are given)",
		Long: `Runs the named seeds, or every seed, in numeric prefix order. Each seed
runs in its own transaction. Replace seeds empty their table first; never
run them against a production database holding user data in those tables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := getDB(cmd)
			if err != nil {
				return err
			}
			defer database.Close(db)

			runner := seeds.NewRunner(db, seeds.Env{
				Logger: outputLogger(cmd),
				Config: cfg.Seed,
				Now:    time.Now,
			})
			results, err := runner.Run(cmd.Context(), args...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-28s  %8s  %8s  %8s\n", "Seed", "Inserted", "Deleted", "Skipped")
			for _, r := range results {
				fmt.Fprintf(out, "%-28s  %8d  %8d  %8d\n", r.Seed, r.Inserted, r.Deleted, r.Skipped)
			}
			return nil
		},
	}
}

func SeedListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available seeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-28s  %-9s  %s\n", "Seed", "Kind", "Description")
			for _, s := range seeds.All() {
				fmt.Fprintf(out, "%-28s  %-9s  %s\n", s.Name, s.Kind, s.Description)
			}
			return nil
		},
	}
}
