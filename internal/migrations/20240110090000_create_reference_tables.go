package migrations

import (
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/migration"
	"github.com/beesaferoot/unilets/internal/models"
)

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240110090000",
		Name:    "create_reference_tables",
		Up: func(db *gorm.DB) error {
			return createTables(db, &models.City{}, &models.University{}, &models.Feature{})
		},
		Down: func(db *gorm.DB) error {
			return dropTables(db, &models.Feature{}, &models.University{}, &models.City{})
		},
	})
}
