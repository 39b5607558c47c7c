package migration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/gorm"
)

// Migrator handles the execution of migrations. It is not safe for
// concurrent use and must not run alongside application traffic.
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
	logger     *log.Logger
	now        func() time.Time
}

// NewMigrator creates a new Migrator instance over the given migrations
func NewMigrator(db *gorm.DB, migrations []*Migration) *Migrator {
	m := &Migrator{
		db:         db,
		migrations: make([]*Migration, len(migrations)),
		logger:     log.New(io.Discard, "", 0),
		now:        time.Now,
	}
	copy(m.migrations, migrations)
	sortByVersion(m.migrations)
	return m
}

// SetLogger routes progress messages to l
func (m *Migrator) SetLogger(l *log.Logger) {
	if l != nil {
		m.logger = l
	}
}

// Register adds a migration to the migrator
func (m *Migrator) Register(migration *Migration) {
	m.migrations = append(m.migrations, migration)
	sortByVersion(m.migrations)
}

// Migrations returns the known migrations in version order
func (m *Migrator) Migrations() []*Migration {
	out := make([]*Migration, len(m.migrations))
	copy(out, m.migrations)
	return out
}

// Validate checks every migration is well formed and reversible
func (m *Migrator) Validate() error {
	seen := make(map[string]string, len(m.migrations))
	for _, mg := range m.migrations {
		if _, err := time.Parse(VersionLayout, mg.Version); err != nil {
			return fmt.Errorf("migration %q: version must use layout %s", mg.String(), VersionLayout)
		}
		if mg.Name == "" {
			return fmt.Errorf("migration %s: name is required", mg.Version)
		}
		if prev, ok := seen[mg.Version]; ok {
			return fmt.Errorf("duplicate migration version %s (%s and %s)", mg.Version, prev, mg.Name)
		}
		seen[mg.Version] = mg.Name
		if mg.Up == nil {
			return fmt.Errorf("migration %s: up step is required", mg.String())
		}
		if mg.Down == nil {
			return fmt.Errorf("migration %s: %w", mg.String(), ErrNotReversible)
		}
	}
	return nil
}

// EnsureVersionTable creates the version tracking table if it doesn't exist
func (m *Migrator) EnsureVersionTable(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

// GetAppliedVersions returns the applied migration records keyed by version
func (m *Migrator) GetAppliedVersions(ctx context.Context) (map[string]MigrationRecord, error) {
	if err := m.EnsureVersionTable(ctx); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	versions := make(map[string]MigrationRecord, len(records))
	for _, record := range records {
		versions[record.Version] = record
	}
	return versions, nil
}

// Pending returns the migrations not applied yet, oldest first. A pending
// migration older than the newest applied one is an error.
func (m *Migrator) Pending(ctx context.Context) ([]*Migration, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	applied, err := m.GetAppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	latest := ""
	for version := range applied {
		if version > latest {
			latest = version
		}
	}

	var pending []*Migration
	for _, mg := range m.migrations {
		if _, ok := applied[mg.Version]; ok {
			continue
		}
		if mg.Version < latest {
			return nil, fmt.Errorf("migration %s (latest applied %s): %w", mg.String(), latest, ErrOutOfOrder)
		}
		pending = append(pending, mg)
	}
	return pending, nil
}

// Up applies all pending migrations and returns the ones it applied. Running
// it again once everything is applied does nothing.
func (m *Migrator) Up(ctx context.Context) ([]*Migration, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return nil, err
	}

	if len(pending) > 0 && !m.transactionalDDL() {
		m.logger.Printf("warning: %s commits DDL implicitly, a failing migration can leave partial changes", m.db.Dialector.Name())
	}

	var applied []*Migration
	for _, mg := range pending {
		m.logger.Printf("Applying migration: %s (%s)", mg.Name, mg.Version)

		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mg.Up(tx); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", mg.String(), err)
			}

			record := MigrationRecord{
				Version:   mg.Version,
				Name:      mg.Name,
				AppliedAt: m.now().UTC(),
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", mg.String(), err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}

		applied = append(applied, mg)
		m.logger.Printf("Successfully applied migration: %s", mg.Name)
	}
	return applied, nil
}

// Down rolls back the last applied migration
func (m *Migrator) Down(ctx context.Context) (*Migration, error) {
	if err := m.EnsureVersionTable(ctx); err != nil {
		return nil, err
	}

	var lastRecord MigrationRecord
	err := m.db.WithContext(ctx).Order("version DESC").First(&lastRecord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoMigrations
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last migration: %w", err)
	}

	var targetMigration *Migration
	for _, mg := range m.migrations {
		if mg.Version == lastRecord.Version {
			targetMigration = mg
			break
		}
	}
	if targetMigration == nil {
		return nil, fmt.Errorf("migration source for version %s (%s) not found", lastRecord.Version, lastRecord.Name)
	}
	if targetMigration.Down == nil {
		return nil, fmt.Errorf("migration %s: %w", targetMigration.String(), ErrNotReversible)
	}

	m.logger.Printf("Reverting migration: %s (%s)", targetMigration.Name, targetMigration.Version)

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := targetMigration.Down(tx); err != nil {
			return fmt.Errorf("failed to revert migration %s: %w", targetMigration.String(), err)
		}
		if err := tx.Delete(&lastRecord).Error; err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Printf("Successfully reverted migration: %s", targetMigration.Name)
	return targetMigration, nil
}

// Rollback reverts the given number of most recent migrations
func (m *Migrator) Rollback(ctx context.Context, steps int) ([]*Migration, error) {
	if steps < 1 {
		return nil, fmt.Errorf("steps must be at least 1, got %d", steps)
	}

	var reverted []*Migration
	for i := 0; i < steps; i++ {
		mg, err := m.Down(ctx)
		if errors.Is(err, ErrNoMigrations) && len(reverted) > 0 {
			break
		}
		if err != nil {
			return reverted, err
		}
		reverted = append(reverted, mg)
	}
	return reverted, nil
}

// Status lists every known migration with its applied time
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	applied, err := m.GetAppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(m.migrations))
	for _, mg := range m.migrations {
		status := Status{Migration: mg}
		if record, ok := applied[mg.Version]; ok {
			appliedAt := record.AppliedAt
			status.AppliedAt = &appliedAt
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// History returns the applied migration records, newest first
func (m *Migrator) History(ctx context.Context) ([]MigrationRecord, error) {
	if err := m.EnsureVersionTable(ctx); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.WithContext(ctx).Order("version DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get migration history: %w", err)
	}
	return records, nil
}

func (m *Migrator) transactionalDDL() bool {
	return m.db.Dialector.Name() != "mysql"
}
