package migrations

import (
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/migration"
	"github.com/beesaferoot/unilets/internal/models"
)

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240110090100",
		Name:    "create_users",
		Up: func(db *gorm.DB) error {
			return createTables(db, &models.User{})
		},
		Down: func(db *gorm.DB) error {
			return dropTables(db, &models.User{})
		},
	})
}
