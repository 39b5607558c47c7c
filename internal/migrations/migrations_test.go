package migrations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/database"
	"github.com/beesaferoot/unilets/internal/dbtest"
	"github.com/beesaferoot/unilets/internal/migration"
	"github.com/beesaferoot/unilets/internal/migrations"
	"github.com/beesaferoot/unilets/internal/models"
	"github.com/beesaferoot/unilets/internal/schema"
)

func TestAllIsValidAndOrdered(t *testing.T) {
	all := migrations.All()
	require.Len(t, all, 6)
	require.NoError(t, migration.NewMigrator(nil, all).Validate())

	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Version, all[i].Version)
	}
}

func TestEachMigrationRoundTrips(t *testing.T) {
	ctx := context.Background()
	all := migrations.All()

	for i, mg := range all {
		t.Run(mg.String(), func(t *testing.T) {
			db := dbtest.Open(t)
			previous := migration.NewMigrator(db, all[:i])
			require.NoError(t, previous.EnsureVersionTable(ctx))
			_, err := previous.Up(ctx)
			require.NoError(t, err)

			before, err := schema.Inspect(db)
			require.NoError(t, err)

			migrator := migration.NewMigrator(db, all[:i+1])
			applied, err := migrator.Up(ctx)
			require.NoError(t, err)
			require.Len(t, applied, 1)

			reverted, err := migrator.Down(ctx)
			require.NoError(t, err)
			assert.Equal(t, mg.Version, reverted.Version)

			after, err := schema.Inspect(db)
			require.NoError(t, err)
			assert.Equal(t, before, after)

			_, err = migrator.Up(ctx)
			require.NoError(t, err)
		})
	}
}

func TestSchemaMatchesModels(t *testing.T) {
	db := dbtest.Migrated(t)

	snapshot, err := schema.Inspect(db)
	require.NoError(t, err)

	missing, err := schema.Drift(snapshot, models.All()...)
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Contains(t, snapshot.Tables(), "schema_migrations")
}

func TestFullRollbackLeavesOnlyVersionTable(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Migrated(t)

	reverted, err := migrations.NewMigrator(db).Rollback(ctx, len(migrations.All()))
	require.NoError(t, err)
	assert.Len(t, reverted, len(migrations.All()))

	snapshot, err := schema.Inspect(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"schema_migrations"}, snapshot.Tables())
}

type fixture struct {
	city       models.City
	university models.University
	agent      models.User
	student    models.User
	property   models.Property
	feature    models.Feature
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	var f fixture

	f.city = models.City{Name: "Leeds", Slug: "leeds"}
	require.NoError(t, db.Create(&f.city).Error)

	f.university = models.University{Name: "University of Leeds", Slug: "university-of-leeds", CityID: &f.city.ID}
	require.NoError(t, db.Create(&f.university).Error)

	f.agent = models.User{Name: "Agent", Email: "agent@example.com", PasswordHash: "x", Role: models.RoleAgent}
	require.NoError(t, db.Create(&f.agent).Error)

	f.student = models.User{Name: "Student", Email: "student@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&f.student).Error)

	f.property = models.Property{
		Title:        "Hyde Park House",
		Slug:         "hyde-park-house",
		CityID:       &f.city.ID,
		UniversityID: &f.university.ID,
		AgentID:      &f.agent.ID,
		Price:        145,
		PricePeriod:  models.PricePerPersonPerWeek,
		Status:       models.PropertyStatusActive,
	}
	require.NoError(t, db.Create(&f.property).Error)

	f.feature = models.Feature{Name: "WiFi", Category: "utilities"}
	require.NoError(t, db.Create(&f.feature).Error)

	return f
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestDeletingPropertyCascadesToOwnedRows(t *testing.T) {
	db := dbtest.Migrated(t)
	f := seedFixture(t, db)

	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.PropertyImage{PropertyID: f.property.ID, URL: "/img/1.jpg", IsPrimary: true}).Error)
	require.NoError(t, db.Create(&models.PropertyFeature{PropertyID: f.property.ID, FeatureID: f.feature.ID}).Error)
	require.NoError(t, db.Create(&models.PropertyAvailability{PropertyID: f.property.ID, StartDate: start, EndDate: start.AddDate(1, 0, 0)}).Error)
	require.NoError(t, db.Create(&models.UserShortlist{UserID: f.student.ID, PropertyID: f.property.ID}).Error)

	require.NoError(t, db.Delete(&models.Property{}, f.property.ID).Error)

	assert.Zero(t, count(t, db, &models.PropertyImage{}))
	assert.Zero(t, count(t, db, &models.PropertyFeature{}))
	assert.Zero(t, count(t, db, &models.PropertyAvailability{}))
	assert.Zero(t, count(t, db, &models.UserShortlist{}))
	assert.Equal(t, int64(1), count(t, db, &models.Feature{}))
}

func TestDeletingParentsNullsSoftReferences(t *testing.T) {
	db := dbtest.Migrated(t)
	f := seedFixture(t, db)

	require.NoError(t, db.Delete(&models.User{}, f.agent.ID).Error)
	require.NoError(t, db.Delete(&models.University{}, f.university.ID).Error)
	require.NoError(t, db.Delete(&models.City{}, f.city.ID).Error)

	var property models.Property
	require.NoError(t, db.First(&property, f.property.ID).Error)
	assert.Nil(t, property.AgentID)
	assert.Nil(t, property.UniversityID)
	assert.Nil(t, property.CityID)
}

func TestDeletingUserKeepsActivityRows(t *testing.T) {
	db := dbtest.Migrated(t)
	f := seedFixture(t, db)

	entry := models.ActivityLog{UserID: &f.student.ID, Action: "login", ResourceType: "user", Details: []byte(`{}`)}
	require.NoError(t, db.Create(&entry).Error)

	require.NoError(t, db.Delete(&models.User{}, f.student.ID).Error)

	var stored models.ActivityLog
	require.NoError(t, db.First(&stored, entry.ID).Error)
	assert.Nil(t, stored.UserID)
	assert.Equal(t, "login", stored.Action)
}

func TestBookingConstraints(t *testing.T) {
	db := dbtest.Migrated(t)
	f := seedFixture(t, db)

	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	booking := models.Booking{
		UserID:      f.student.ID,
		PropertyID:  f.property.ID,
		StartDate:   start,
		EndDate:     start.AddDate(1, 0, 0),
		Status:      models.BookingConfirmed,
		TotalAmount: 7540,
	}
	require.NoError(t, db.Create(&booking).Error)

	duplicate := booking
	duplicate.ID = 0
	err := db.Create(&duplicate).Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err), err.Error())

	err = db.Delete(&models.Property{}, f.property.ID).Error
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err), err.Error())

	payment := models.Payment{BookingID: &booking.ID, UserID: &f.student.ID, Amount: 500, Gateway: "stripe", Status: models.PaymentCompleted}
	require.NoError(t, db.Create(&payment).Error)
	rent := models.RentPayment{BookingID: booking.ID, UserID: &f.student.ID, PaymentID: &payment.ID, Amount: 500, DueDate: start}
	require.NoError(t, db.Create(&rent).Error)

	require.NoError(t, db.Delete(&models.User{}, f.student.ID).Error)

	assert.Zero(t, count(t, db, &models.Booking{}))
	assert.Zero(t, count(t, db, &models.RentPayment{}))

	var kept models.Payment
	require.NoError(t, db.First(&kept, payment.ID).Error)
	assert.Nil(t, kept.BookingID)
	assert.Nil(t, kept.UserID)
}

func TestShortlistPairIsUnique(t *testing.T) {
	db := dbtest.Migrated(t)
	f := seedFixture(t, db)

	entry := models.UserShortlist{UserID: f.student.ID, PropertyID: f.property.ID}
	require.NoError(t, db.Create(&entry).Error)

	duplicate := models.UserShortlist{UserID: f.student.ID, PropertyID: f.property.ID}
	err := db.Create(&duplicate).Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err), err.Error())
	assert.Equal(t, int64(1), count(t, db, &models.UserShortlist{}))
}

func TestGatewayTransactionIDIsUniqueWhenSet(t *testing.T) {
	db := dbtest.Migrated(t)

	require.NoError(t, db.Create(&models.Payment{Amount: 10, Gateway: "manual"}).Error)
	require.NoError(t, db.Create(&models.Payment{Amount: 20, Gateway: "manual"}).Error)

	txID := "pi_123"
	require.NoError(t, db.Create(&models.Payment{Amount: 30, Gateway: "stripe", GatewayTransactionID: &txID}).Error)
	err := db.Create(&models.Payment{Amount: 40, Gateway: "stripe", GatewayTransactionID: &txID}).Error
	assert.True(t, database.IsUniqueViolation(err))
}
