package migration

import (
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotReversible is returned for a migration without a Down step
	ErrNotReversible = errors.New("migration is not reversible")
	// ErrOutOfOrder is returned when a pending migration is older than one
	// already applied
	ErrOutOfOrder = errors.New("migration is older than the latest applied migration")
	// ErrNoMigrations is returned by Down when nothing has been applied
	ErrNoMigrations = errors.New("no migrations to revert")
)

// VersionLayout is the time format migration versions are written in
const VersionLayout = "20060102150405"

// Migration represents a single database migration
type Migration struct {
	Version string // Unique version identifier (e.g., timestamp)
	Name    string // Human-readable name of the migration
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

func (m *Migration) String() string {
	return m.Version + "_" + m.Name
}

// MigrationRecord represents a record of an applied migration
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey;size:14"`
	Name      string    `gorm:"size:255;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// Status pairs a known migration with its applied record, if any
type Status struct {
	Migration *Migration
	AppliedAt *time.Time
}

func (s Status) Applied() bool {
	return s.AppliedAt != nil
}

// Global migration registry
var (
	globalMigrations = make([]*Migration, 0)
	registryMutex    sync.RWMutex
)

// RegisterMigration registers a migration globally. Migration files call it
// from init.
func RegisterMigration(migration *Migration) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	globalMigrations = append(globalMigrations, migration)
}

// GetRegisteredMigrations returns all registered migrations sorted by version
func GetRegisteredMigrations() []*Migration {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	migrations := make([]*Migration, len(globalMigrations))
	copy(migrations, globalMigrations)
	sortByVersion(migrations)
	return migrations
}

// ResetMigrations clears the global migration registry (for testing)
func ResetMigrations() {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	globalMigrations = make([]*Migration, 0)
}

func sortByVersion(migrations []*Migration) {
	sort.SliceStable(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
}
