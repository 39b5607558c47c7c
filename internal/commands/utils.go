package commands

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/config"
	"github.com/beesaferoot/unilets/internal/database"
	"github.com/beesaferoot/unilets/internal/migration"
	"github.com/beesaferoot/unilets/internal/migrations"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("UNILETS_CONFIG")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Database.LogLevel = "info"
	}
	return cfg, nil
}

func getDB(cmd *cobra.Command) (*gorm.DB, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}

func outputLogger(cmd *cobra.Command) *log.Logger {
	return log.New(cmd.OutOrStdout(), "", 0)
}

func getMigrator(cmd *cobra.Command, db *gorm.DB) *migration.Migrator {
	m := migrations.NewMigrator(db)
	m.SetLogger(outputLogger(cmd))
	return m
}
