// Package sqlbuilder renders CREATE TABLE statements through a fluent,
// flavor-parameterized API.
//
// Usage:
//
//	b, err := sqlbuilder.New(dialect.FlavorPostgres)
//	sql := b.WithSchema("public").CreateTable("users", func(t *sqlbuilder.Table) {
//	    t.Increments("id")
//	    t.SpecificType("email", "varchar(255)").NotNullable()
//	    t.SpecificType("created_at", "timestamptz").DefaultTo(b.Raw("now()")).Nullable()
//	}).ToQuery()
//
// A Builder never touches the network; it only assembles text.
package sqlbuilder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/koustreak/ddlgen/internal/dialect"
	"github.com/koustreak/ddlgen/internal/errs"
)

// StatementSeparator joins the statements of a multi-statement render.
const StatementSeparator = ";\n"

// Builder is the shared statement builder for one flavor.
type Builder struct {
	cp *compiler
}

// New returns a Builder for the given flavor. Unknown flavors fail with
// ErrKindUnsupportedDialect.
func New(f dialect.Flavor) (*Builder, error) {
	cp, ok := compilers[f]
	if !ok {
		return nil, errs.New(errs.ErrKindUnsupportedDialect, fmt.Sprintf("sqlbuilder: no compiler for flavor %q", f))
	}
	return &Builder{cp: cp}, nil
}

// Flavor returns the flavor the builder renders.
func (b *Builder) Flavor() dialect.Flavor {
	return b.cp.flavor
}

// Raw marks sql as a verbatim fragment.
func (b *Builder) Raw(sql string) Raw {
	return Raw(sql)
}

// Schema returns a SchemaBuilder scoped to the default namespace; table
// references are left unqualified.
func (b *Builder) Schema() *SchemaBuilder {
	return &SchemaBuilder{cp: b.cp}
}

// WithSchema returns a SchemaBuilder whose table references are qualified
// with namespace.
func (b *Builder) WithSchema(namespace string) *SchemaBuilder {
	return &SchemaBuilder{cp: b.cp, namespace: namespace}
}

// Raw is a SQL fragment emitted without quoting or escaping.
type Raw string

// SchemaBuilder creates tables within one namespace.
type SchemaBuilder struct {
	cp        *compiler
	namespace string
}

// CreateTable records a CREATE TABLE for name; fn declares its columns and
// constraints.
func (s *SchemaBuilder) CreateTable(name string, fn func(*Table)) *CreateTable {
	t := &Table{}
	if fn != nil {
		fn(t)
	}
	return &CreateTable{cp: s.cp, namespace: s.namespace, name: name, table: t}
}

// Table collects column and constraint declarations for a CreateTable.
type Table struct {
	columns []*Column
	primary []string
}

// Increments declares an auto-incrementing integer column.
func (t *Table) Increments(name string) *Column {
	c := &Column{name: name, increments: true}
	t.columns = append(t.columns, c)
	return c
}

// SpecificType declares a column whose type token is emitted verbatim.
func (t *Table) SpecificType(name, typ string) *Column {
	c := &Column{name: name, typ: typ}
	t.columns = append(t.columns, c)
	return c
}

// Primary declares a (possibly composite) primary-key constraint.
func (t *Table) Primary(columns []string) {
	t.primary = append([]string(nil), columns...)
}

// Column is one declared column; modifiers chain.
type Column struct {
	name       string
	typ        string
	increments bool
	def        *Raw
	unsigned   bool
	comment    *string
	nullable   *bool
}

// DefaultTo sets a raw default expression.
func (c *Column) DefaultTo(r Raw) *Column {
	c.def = &r
	return c
}

// Unsigned marks a numeric column unsigned where the flavor supports it.
func (c *Column) Unsigned() *Column {
	c.unsigned = true
	return c
}

// Comment attaches a column comment.
func (c *Column) Comment(text string) *Column {
	c.comment = &text
	return c
}

// Nullable emits an explicit NULL constraint.
func (c *Column) Nullable() *Column {
	v := true
	c.nullable = &v
	return c
}

// NotNullable emits a NOT NULL constraint.
func (c *Column) NotNullable() *Column {
	v := false
	c.nullable = &v
	return c
}

// CreateTable is a compiled-on-demand CREATE TABLE.
type CreateTable struct {
	cp        *compiler
	namespace string
	name      string
	table     *Table
}

// TableRef returns the rendered (qualified, quoted) table reference.
func (c *CreateTable) TableRef() string {
	return c.cp.tableRef(c.namespace, c.name)
}

// Statements returns the CREATE TABLE followed by any statements the
// flavor needs for column comments.
func (c *CreateTable) Statements() []string {
	cp := c.cp
	defs := make([]string, 0, len(c.table.columns)+1)
	var trailing []string

	// A table-level primary key replaces the inline key of increments
	// columns; a table may declare only one.
	keyed := len(c.table.primary) == 0
	var unique []string

	for _, col := range c.table.columns {
		defs = append(defs, cp.columnDef(col, keyed))
		if col.increments && !keyed && cp.incrementsUnique && !slices.Contains(c.table.primary, col.name) {
			unique = append(unique, "unique ("+cp.ident(col.name)+")")
		}
		if col.comment != nil {
			if stmt := cp.commentStatement(c.namespace, c.name, col); stmt != "" {
				trailing = append(trailing, stmt)
			}
		}
	}
	if !keyed {
		defs = append(defs, cp.primaryKey(c.name, c.table.primary))
	}
	defs = append(defs, unique...)

	var sb strings.Builder
	sb.WriteString("create table ")
	sb.WriteString(c.TableRef())
	sb.WriteString(" (")
	sb.WriteString(strings.Join(defs, ", "))
	sb.WriteString(")")

	return append([]string{sb.String()}, trailing...)
}

// ToQuery joins Statements with StatementSeparator.
func (c *CreateTable) ToQuery() string {
	return strings.Join(c.Statements(), StatementSeparator)
}
