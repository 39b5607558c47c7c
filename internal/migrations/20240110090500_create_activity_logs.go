package migrations

import (
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/migration"
	"github.com/beesaferoot/unilets/internal/models"
)

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240110090500",
		Name:    "create_activity_logs",
		Up: func(db *gorm.DB) error {
			return createTables(db, &models.ActivityLog{})
		},
		Down: func(db *gorm.DB) error {
			return dropTables(db, &models.ActivityLog{})
		},
	})
}
