// Package ddl defines the dialect-neutral table description the generator
// compiles into CREATE TABLE statements.
package ddl

import (
	"fmt"
	"strings"

	"github.com/koustreak/ddlgen/internal/errs"
)

// AutoIncrement is the reserved DataType value asking for the backend's
// native auto-incrementing integer column. It is not a literal type name.
const AutoIncrement = "autoincrement"

// Schema describes one table: its name, an optional namespace qualifier and
// its ordered columns. Column order fixes output order only.
type Schema struct {
	// Name is the table name without qualification.
	Name string `yaml:"name" json:"name"`
	// Schema is the namespace (schema, dataset, keyspace) the table lives in.
	// Empty means the builder default.
	Schema string `yaml:"schema,omitempty" json:"schema,omitempty"`
	// Columns in declaration order.
	Columns []SchemaItem `yaml:"columns" json:"columns"`
}

// SchemaItem is one column's full descriptor.
type SchemaItem struct {
	ColumnName string `yaml:"columnName" json:"columnName"`
	// DataType is a raw type token for the target dialect, or AutoIncrement.
	DataType   string `yaml:"dataType" json:"dataType"`
	Nullable   bool   `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	PrimaryKey bool   `yaml:"primaryKey,omitempty" json:"primaryKey,omitempty"`
	Unsigned   bool   `yaml:"unsigned,omitempty" json:"unsigned,omitempty"`
	// DefaultValue is a raw SQL fragment spliced verbatim, not a literal.
	DefaultValue string `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	Comment      string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// IsAutoIncrement reports whether the column uses the auto-increment path.
func (c SchemaItem) IsAutoIncrement() bool {
	return c.DataType == AutoIncrement
}

// Validate checks the structural rules every render depends on: a table
// name, at least one column, and a name and type on every column.
func (s Schema) Validate() error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return errs.New(errs.ErrKindRender, "ddl: table name must not be empty")
	}
	if len(s.Columns) == 0 {
		return errs.New(errs.ErrKindRender, fmt.Sprintf("ddl: table %s: at least one column is required", name))
	}
	seen := make(map[string]bool, len(s.Columns))
	for i, c := range s.Columns {
		col := strings.TrimSpace(c.ColumnName)
		if col == "" {
			return errs.New(errs.ErrKindRender, fmt.Sprintf("ddl: table %s: column %d has an empty name", name, i))
		}
		if strings.TrimSpace(c.DataType) == "" {
			return errs.New(errs.ErrKindRender, fmt.Sprintf("ddl: table %s: column %s missing data type", name, col))
		}
		if seen[col] {
			return errs.New(errs.ErrKindRender, fmt.Sprintf("ddl: table %s: duplicate column %s", name, col))
		}
		seen[col] = true
	}
	return nil
}

// PrimaryKeys returns the names of primary-key columns in declaration order.
// When skipAutoIncrement is set, auto-increment columns are left out.
func (s Schema) PrimaryKeys(skipAutoIncrement bool) []string {
	var pks []string
	for _, c := range s.Columns {
		if !c.PrimaryKey {
			continue
		}
		if skipAutoIncrement && c.IsAutoIncrement() {
			continue
		}
		pks = append(pks, c.ColumnName)
	}
	return pks
}
