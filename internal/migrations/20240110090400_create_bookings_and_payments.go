package migrations

import (
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/migration"
	"github.com/beesaferoot/unilets/internal/models"
)

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240110090400",
		Name:    "create_bookings_and_payments",
		Up: func(db *gorm.DB) error {
			return createTables(db,
				&models.Booking{},
				&models.Payment{},
				&models.Refund{},
				&models.RentPayment{},
			)
		},
		Down: func(db *gorm.DB) error {
			return dropTables(db,
				&models.RentPayment{},
				&models.Refund{},
				&models.Payment{},
				&models.Booking{},
			)
		},
	})
}
