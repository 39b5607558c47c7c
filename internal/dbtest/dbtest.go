// Package dbtest provides throwaway SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beesaferoot/unilets/internal/database"
	"github.com/beesaferoot/unilets/internal/migrations"
)

// Open returns an empty file-backed SQLite database with foreign keys on.
// A file is used instead of :memory: so every pooled connection sees the
// same schema.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// URL returns a sqlite:// database url in a temp dir, for code that opens
// its own connection.
func URL(t *testing.T) string {
	t.Helper()
	return "sqlite://" + filepath.Join(t.TempDir(), "test.db")
}

// Migrated returns a database with every migration applied
func Migrated(t *testing.T) *gorm.DB {
	t.Helper()

	db := Open(t)
	_, err := migrations.NewMigrator(db).Up(context.Background())
	require.NoError(t, err)
	return db
}
