package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/unilets/internal/migration"
)

var migrationNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

const migrationTemplate = `package migrations

import (
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/migration"
)

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "%s",
		Name:    "%s",
		Up: func(db *gorm.DB) error {
			return nil
		},
		Down: func(db *gorm.DB) error {
			return nil
		},
	})
}
`

func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if !migrationNamePattern.MatchString(name) {
				return fmt.Errorf("migration name %q must be snake_case", name)
			}

			dir, _ := cmd.Flags().GetString("dir")
			migrationsDir, err := validateMigrationsPath(dir)
			if err != nil {
				return err
			}

			version := time.Now().UTC().Format(migration.VersionLayout)
			filePath := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.go", version, name))
			content := fmt.Sprintf(migrationTemplate, version, name)

			if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
				return fmt.Errorf("failed to create migration file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created migration: %s\n", filePath)
			return nil
		},
	}

	cmd.Flags().String("dir", "internal/migrations", "Directory the migration file is written to")

	return cmd
}

// validateMigrationsPath keeps generated files inside the working directory
func validateMigrationsPath(path string) (string, error) {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("invalid migrations path: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	rel, err := filepath.Rel(wd, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("migrations path must be within working directory")
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return "", fmt.Errorf("migrations path is not writable: %w", err)
	}

	return absPath, nil
}
