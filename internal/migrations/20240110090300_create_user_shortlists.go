package migrations

import (
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/migration"
	"github.com/beesaferoot/unilets/internal/models"
)

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240110090300",
		Name:    "create_user_shortlists",
		Up: func(db *gorm.DB) error {
			return createTables(db, &models.UserShortlist{})
		},
		Down: func(db *gorm.DB) error {
			return dropTables(db, &models.UserShortlist{})
		},
	})
}
