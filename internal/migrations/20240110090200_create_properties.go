package migrations

import (
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/migration"
	"github.com/beesaferoot/unilets/internal/models"
)

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240110090200",
		Name:    "create_properties",
		Up: func(db *gorm.DB) error {
			return createTables(db,
				&models.Property{},
				&models.PropertyImage{},
				&models.PropertyFeature{},
				&models.PropertyAvailability{},
			)
		},
		Down: func(db *gorm.DB) error {
			return dropTables(db,
				&models.PropertyAvailability{},
				&models.PropertyFeature{},
				&models.PropertyImage{},
				&models.Property{},
			)
		},
	})
}
