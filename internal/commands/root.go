package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the unilets command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "unilets",
		Short:         "Schema, seed and audit tooling for the unilets database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default $UNILETS_CONFIG)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every SQL statement")

	rootCmd.AddCommand(
		MigrateCmd(),
		SeedCmd(),
		ActivityCmd(),
		SchemaCmd(),
	)
	return rootCmd
}

// MigrateCmd groups the migration subcommands
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, revert and inspect schema migrations",
	}
	cmd.AddCommand(
		CreateCmd(),
		UpCmd(),
		DownCmd(),
		StatusCmd(),
		HistoryCmd(),
		ValidateCmd(),
	)
	return cmd
}
