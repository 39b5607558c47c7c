package seeds

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrMissingDependency is returned when a seed references a natural key that
// an earlier seed should have created.
var ErrMissingDependency = errors.New("missing seed dependency")

// KeyRow is one row reduced to its id and natural key
type KeyRow struct {
	ID         uint
	NaturalKey string
}

// Index maps the natural keys of one table to ids
type Index struct {
	table string
	ids   map[string]uint
}

// NewIndex builds an index from rows already read from table
func NewIndex(table string, rows []KeyRow) Index {
	ids := make(map[string]uint, len(rows))
	for _, row := range rows {
		ids[row.NaturalKey] = row.ID
	}
	return Index{table: table, ids: ids}
}

// Resolve returns the id stored under key
func (ix Index) Resolve(key string) (uint, error) {
	id, ok := ix.ids[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s %q not found", ErrMissingDependency, ix.table, key)
	}
	return id, nil
}

// ResolveOptional is Resolve for nullable references; an empty key is nil
func (ix Index) ResolveOptional(key string) (*uint, error) {
	if key == "" {
		return nil, nil
	}
	id, err := ix.Resolve(key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (ix Index) Len() int {
	return len(ix.ids)
}

// IndexBySlug reads the id and slug of every row in table
func IndexBySlug(tx *gorm.DB, table string) (Index, error) {
	return loadIndex(tx, table, "slug")
}

// IndexByName reads the id and name of every row in table
func IndexByName(tx *gorm.DB, table string) (Index, error) {
	return loadIndex(tx, table, "name")
}

func loadIndex(tx *gorm.DB, table, column string) (Index, error) {
	var rows []KeyRow
	err := tx.Table(table).Select("id, " + column + " AS natural_key").Scan(&rows).Error
	if err != nil {
		return Index{}, fmt.Errorf("failed to read %s keys: %w", table, err)
	}
	return NewIndex(table, rows), nil
}
