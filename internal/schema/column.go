package schema

import (
	GORMSchema "gorm.io/gorm/schema"
)

// Column is one persisted field of a model
type Column struct {
	*GORMSchema.Field
}

func (c *Column) ColumnName() string {
	return c.DBName
}

// Nullable reports whether the column accepts NULL. Pointer fields without
// a not null tag map to nullable columns.
func (c *Column) Nullable() bool {
	return !c.NotNull && !c.PrimaryKey
}
