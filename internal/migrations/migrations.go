// Package migrations holds the unilets schema history. Each file registers
// one migration from init; versions are UTC timestamps and are applied in
// ascending order.
package migrations

import (
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/migration"
)

// All returns every registered migration sorted by version
func All() []*migration.Migration {
	return migration.GetRegisteredMigrations()
}

// NewMigrator returns a migrator over All
func NewMigrator(db *gorm.DB) *migration.Migrator {
	return migration.NewMigrator(db, All())
}

func createTables(tx *gorm.DB, models ...interface{}) error {
	for _, model := range models {
		if err := tx.Migrator().CreateTable(model); err != nil {
			return err
		}
	}
	return nil
}

// dropTables drops in the order given, so callers list children first
func dropTables(tx *gorm.DB, models ...interface{}) error {
	for _, model := range models {
		if err := tx.Migrator().DropTable(model); err != nil {
			return err
		}
	}
	return nil
}
