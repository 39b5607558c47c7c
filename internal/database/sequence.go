package database

import (
	"fmt"
	"regexp"

	"gorm.io/gorm"
)

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ResetSequence moves the id sequence of table past the highest stored id.
// Needed after rows were inserted with explicit ids on PostgreSQL; SQLite and
// MySQL advance their counters on their own, so it is a no-op there.
func ResetSequence(db *gorm.DB, table, column string) error {
	if db.Dialector.Name() != DialectPostgres {
		return nil
	}
	if !identifierPattern.MatchString(table) || !identifierPattern.MatchString(column) {
		return fmt.Errorf("invalid identifier %q.%q", table, column)
	}

	stmt := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE(MAX(%s), 0) + 1, false) FROM %s`,
		table, column, column, table,
	)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to reset sequence for %s.%s: %w", table, column, err)
	}
	return nil
}
