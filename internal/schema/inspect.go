package schema

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// TableState is what the database reports for one table
type TableState struct {
	Columns []string
	Indexes []string
}

// Snapshot is the live shape of a database, keyed by table name
type Snapshot map[string]TableState

// Tables returns the table names in sorted order
func (s Snapshot) Tables() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Inspect reads tables, columns and indexes from the connected database.
// SQLite bookkeeping tables such as sqlite_sequence are left out.
func Inspect(db *gorm.DB) (Snapshot, error) {
	migrator := db.Migrator()

	tables, err := migrator.GetTables()
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	snapshot := make(Snapshot, len(tables))
	for _, table := range tables {
		if strings.HasPrefix(table, "sqlite_") {
			continue
		}
		columnTypes, err := migrator.ColumnTypes(table)
		if err != nil {
			return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
		}
		state := TableState{}
		for _, ct := range columnTypes {
			state.Columns = append(state.Columns, ct.Name())
		}

		indexes, err := migrator.GetIndexes(table)
		if err != nil {
			return nil, fmt.Errorf("failed to read indexes of %s: %w", table, err)
		}
		for _, idx := range indexes {
			state.Indexes = append(state.Indexes, idx.Name())
		}

		sort.Strings(state.Columns)
		sort.Strings(state.Indexes)
		snapshot[table] = state
	}

	return snapshot, nil
}

// Drift compares the models against a snapshot and lists tables and columns
// the database is missing.
func Drift(snapshot Snapshot, models ...interface{}) ([]string, error) {
	var missing []string
	for _, model := range models {
		table, err := CreateTableFromModel(model)
		if err != nil {
			return nil, err
		}
		state, ok := snapshot[table.TableName()]
		if !ok {
			missing = append(missing, table.TableName())
			continue
		}
		present := make(map[string]bool, len(state.Columns))
		for _, name := range state.Columns {
			present[name] = true
		}
		for _, column := range table.TableColumns() {
			if !present[column.ColumnName()] {
				missing = append(missing, table.TableName()+"."+column.ColumnName())
			}
		}
	}
	return missing, nil
}
