package schema

import (
	"fmt"
	"sync"

	GORMSchema "gorm.io/gorm/schema"
)

// Table represents a gorm model
type Table struct {
	*GORMSchema.Schema
	Columns []*Column
}

func (t *Table) TableName() string {
	return t.Table
}

func (t *Table) TableColumns() []*Column {
	return t.Columns
}

// ForeignKey describes one foreign key declared by a model
type ForeignKey struct {
	Name            string
	Table           string
	Columns         []string
	ReferencedTable string
	OnDelete        string
	OnUpdate        string
}

func (fk ForeignKey) String() string {
	return fmt.Sprintf("%s(%v) -> %s ON DELETE %s", fk.Table, fk.Columns, fk.ReferencedTable, fk.OnDelete)
}

// ForeignKeys returns the constraints the table owns, as gorm would create them
func (t *Table) ForeignKeys() []ForeignKey {
	var keys []ForeignKey
	for _, rel := range t.Relationships.Relations {
		constraint := rel.ParseConstraint()
		if constraint == nil || constraint.Schema != t.Schema {
			continue
		}
		fk := ForeignKey{
			Name:     constraint.Name,
			Table:    t.Table,
			OnDelete: constraint.OnDelete,
			OnUpdate: constraint.OnUpdate,
		}
		if constraint.ReferenceSchema != nil {
			fk.ReferencedTable = constraint.ReferenceSchema.Table
		}
		for _, field := range constraint.ForeignKeys {
			fk.Columns = append(fk.Columns, field.DBName)
		}
		keys = append(keys, fk)
	}
	return keys
}

func CreateTableFromModel(model interface{}) (*Table, error) {
	modelSchema, err := GORMSchema.Parse(model, &sync.Map{}, GORMSchema.NamingStrategy{})
	if err != nil {
		return nil, err
	}

	columns := make([]*Column, 0)

	for _, field := range modelSchema.Fields {
		if field.DBName == "" {
			continue
		}
		column := &Column{
			Field: field,
		}
		columns = append(columns, column)
	}

	return &Table{Schema: modelSchema, Columns: columns}, nil
}
