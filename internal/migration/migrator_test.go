package migration_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/dbtest"
	"github.com/beesaferoot/unilets/internal/migration"
)

func tableMigration(version, name, table string) *migration.Migration {
	return &migration.Migration{
		Version: version,
		Name:    name,
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE " + table + " (id INTEGER PRIMARY KEY)").Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec("DROP TABLE " + table).Error
		},
	}
}

func hasTable(t *testing.T, db *gorm.DB, name string) bool {
	t.Helper()
	var count int64
	err := db.Raw("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count).Error
	require.NoError(t, err)
	return count == 1
}

func TestMigrator_Up(t *testing.T) {
	db := dbtest.Open(t)
	testMigration := tableMigration("20240315000001", "test_migration", "test")
	migrator := migration.NewMigrator(db, []*migration.Migration{testMigration})

	applied, err := migrator.Up(context.Background())
	require.NoError(t, err)
	assert.Len(t, applied, 1)

	var record migration.MigrationRecord
	err = db.Where("version = ?", testMigration.Version).First(&record).Error
	assert.NoError(t, err)
	assert.Equal(t, testMigration.Name, record.Name)
	assert.False(t, record.AppliedAt.IsZero())

	assert.True(t, hasTable(t, db, "test"))
}

func TestMigrator_UpIsIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	migrator := migration.NewMigrator(db, []*migration.Migration{
		tableMigration("20240315000001", "first", "first_table"),
		tableMigration("20240315000002", "second", "second_table"),
	})

	applied, err := migrator.Up(context.Background())
	require.NoError(t, err)
	assert.Len(t, applied, 2)

	applied, err = migrator.Up(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)

	var count int64
	require.NoError(t, db.Model(&migration.MigrationRecord{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestMigrator_UpAppliesInVersionOrder(t *testing.T) {
	db := dbtest.Open(t)
	var order []string
	track := func(version string) *migration.Migration {
		return &migration.Migration{
			Version: version,
			Name:    "track_" + version,
			Up: func(*gorm.DB) error {
				order = append(order, version)
				return nil
			},
			Down: func(*gorm.DB) error { return nil },
		}
	}

	migrator := migration.NewMigrator(db, []*migration.Migration{
		track("20240315000003"),
		track("20240315000001"),
		track("20240315000002"),
	})

	_, err := migrator.Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"20240315000001", "20240315000002", "20240315000003"}, order)
}

func TestMigrator_FailedMigrationIsNotRecorded(t *testing.T) {
	db := dbtest.Open(t)
	broken := &migration.Migration{
		Version: "20240315000002",
		Name:    "broken",
		Up: func(db *gorm.DB) error {
			if err := db.Exec("CREATE TABLE half_done (id INTEGER PRIMARY KEY)").Error; err != nil {
				return err
			}
			return db.Exec("CREATE TABLE (").Error
		},
		Down: func(db *gorm.DB) error { return nil },
	}
	migrator := migration.NewMigrator(db, []*migration.Migration{
		tableMigration("20240315000001", "first", "first_table"),
		broken,
	})

	applied, err := migrator.Up(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "20240315000002_broken")
	assert.Len(t, applied, 1)

	assert.True(t, hasTable(t, db, "first_table"))
	assert.False(t, hasTable(t, db, "half_done"))

	var count int64
	require.NoError(t, db.Model(&migration.MigrationRecord{}).Where("version = ?", broken.Version).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMigrator_Down(t *testing.T) {
	db := dbtest.Open(t)
	testMigration := tableMigration("20240315000001", "test_migration", "test")
	migrator := migration.NewMigrator(db, []*migration.Migration{testMigration})

	_, err := migrator.Up(context.Background())
	require.NoError(t, err)

	reverted, err := migrator.Down(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testMigration.Version, reverted.Version)

	var record migration.MigrationRecord
	err = db.Where("version = ?", testMigration.Version).First(&record).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.False(t, hasTable(t, db, "test"))

	_, err = migrator.Down(context.Background())
	assert.ErrorIs(t, err, migration.ErrNoMigrations)
}

func TestMigrator_Rollback(t *testing.T) {
	db := dbtest.Open(t)
	migrator := migration.NewMigrator(db, []*migration.Migration{
		tableMigration("20240315000001", "first", "first_table"),
		tableMigration("20240315000002", "second", "second_table"),
		tableMigration("20240315000003", "third", "third_table"),
	})

	_, err := migrator.Up(context.Background())
	require.NoError(t, err)

	reverted, err := migrator.Rollback(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, reverted, 2)
	assert.Equal(t, "third", reverted[0].Name)
	assert.Equal(t, "second", reverted[1].Name)

	assert.True(t, hasTable(t, db, "first_table"))
	assert.False(t, hasTable(t, db, "second_table"))

	_, err = migrator.Rollback(context.Background(), 0)
	assert.Error(t, err)

	reverted, err = migrator.Rollback(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, reverted, 1)
}

func TestMigrator_DownWithoutSource(t *testing.T) {
	db := dbtest.Open(t)
	_, err := migration.NewMigrator(db, []*migration.Migration{
		tableMigration("20240315000001", "first", "first_table"),
	}).Up(context.Background())
	require.NoError(t, err)

	_, err = migration.NewMigrator(db, nil).Down(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMigrator_RejectsOutOfOrderMigration(t *testing.T) {
	db := dbtest.Open(t)
	_, err := migration.NewMigrator(db, []*migration.Migration{
		tableMigration("20240315000002", "second", "second_table"),
	}).Up(context.Background())
	require.NoError(t, err)

	migrator := migration.NewMigrator(db, []*migration.Migration{
		tableMigration("20240315000001", "first", "first_table"),
		tableMigration("20240315000002", "second", "second_table"),
	})
	_, err = migrator.Up(context.Background())
	assert.ErrorIs(t, err, migration.ErrOutOfOrder)
	assert.False(t, hasTable(t, db, "first_table"))
}

func TestMigrator_Status(t *testing.T) {
	db := dbtest.Open(t)
	first := tableMigration("20240315000001", "first", "first_table")
	second := tableMigration("20240315000002", "second", "second_table")

	_, err := migration.NewMigrator(db, []*migration.Migration{first}).Up(context.Background())
	require.NoError(t, err)

	statuses, err := migration.NewMigrator(db, []*migration.Migration{second, first}).Status(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, "first", statuses[0].Migration.Name)
	assert.True(t, statuses[0].Applied())
	assert.Equal(t, "second", statuses[1].Migration.Name)
	assert.False(t, statuses[1].Applied())
}

func TestMigrator_History(t *testing.T) {
	db := dbtest.Open(t)
	migrator := migration.NewMigrator(db, []*migration.Migration{
		tableMigration("20240315000001", "first", "first_table"),
		tableMigration("20240315000002", "second", "second_table"),
	})
	_, err := migrator.Up(context.Background())
	require.NoError(t, err)

	records, err := migrator.History(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "20240315000002", records[0].Version)
}

func TestMigrator_Validate(t *testing.T) {
	valid := tableMigration("20240315000001", "first", "first_table")

	tests := []struct {
		name       string
		migrations []*migration.Migration
		wantErr    string
	}{
		{
			name:       "valid",
			migrations: []*migration.Migration{valid},
		},
		{
			name: "duplicate version",
			migrations: []*migration.Migration{
				valid,
				tableMigration("20240315000001", "again", "again_table"),
			},
			wantErr: "duplicate migration version",
		},
		{
			name:       "malformed version",
			migrations: []*migration.Migration{tableMigration("2024-03-15", "bad", "bad_table")},
			wantErr:    "version must use layout",
		},
		{
			name:       "missing name",
			migrations: []*migration.Migration{tableMigration("20240315000002", "", "nameless")},
			wantErr:    "name is required",
		},
		{
			name: "missing down",
			migrations: []*migration.Migration{{
				Version: "20240315000003",
				Name:    "one_way",
				Up:      func(*gorm.DB) error { return nil },
			}},
			wantErr: migration.ErrNotReversible.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := migration.NewMigrator(nil, tt.migrations).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMigrator_UpRefusesInvalidSet(t *testing.T) {
	db := dbtest.Open(t)
	migrator := migration.NewMigrator(db, []*migration.Migration{{
		Version: "20240315000001",
		Name:    "one_way",
		Up:      func(*gorm.DB) error { return nil },
	}})

	_, err := migrator.Up(context.Background())
	assert.ErrorIs(t, err, migration.ErrNotReversible)
}

func TestRegistry(t *testing.T) {
	saved := migration.GetRegisteredMigrations()
	migration.ResetMigrations()
	t.Cleanup(func() {
		migration.ResetMigrations()
		for _, mg := range saved {
			migration.RegisterMigration(mg)
		}
	})

	migration.RegisterMigration(tableMigration("20240315000002", "second", "second_table"))
	migration.RegisterMigration(tableMigration("20240315000001", "first", "first_table"))

	registered := migration.GetRegisteredMigrations()
	require.Len(t, registered, 2)
	assert.Equal(t, "first", registered[0].Name)
	assert.Equal(t, "20240315000001_first", registered[0].String())
}
