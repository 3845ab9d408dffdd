// Package generator compiles dialect-neutral table descriptions into
// CREATE TABLE statements for a configured dialect and connection.
//
// A Generator is long-lived and reconfigured in place. Every reconfiguration
// rebuilds the builder (or specialized client) synchronously before the
// setter returns, so a render never sees a stale builder. A failed
// reconfiguration leaves the previous configuration in effect.
//
// Usage:
//
//	g, err := generator.New(dialect.PostgreSQL, connection.Config{})
//	sql, err := g.BuildSQL(ddl.Schema{
//	    Name: "users",
//	    Columns: []ddl.SchemaItem{
//	        {ColumnName: "id", DataType: ddl.AutoIncrement, PrimaryKey: true},
//	        {ColumnName: "email", DataType: "varchar(255)"},
//	    },
//	})
//
// A Generator is not safe for concurrent use.
package generator

import (
	"fmt"
	"strings"

	"github.com/koustreak/ddlgen/internal/clients"
	"github.com/koustreak/ddlgen/internal/connection"
	"github.com/koustreak/ddlgen/internal/ddl"
	"github.com/koustreak/ddlgen/internal/dialect"
	"github.com/koustreak/ddlgen/internal/errs"
	"github.com/koustreak/ddlgen/internal/logger"
	"github.com/koustreak/ddlgen/internal/sqlbuilder"
)

// Generator renders CREATE TABLE statements.
type Generator struct {
	dialect dialect.Dialect
	conn    connection.Config
	generic bool
	builder *sqlbuilder.Builder
	// client is nil for generic dialects.
	client clients.Client

	log *logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger reconfigurations are reported to.
func WithLogger(l *logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New returns a Generator configured for d and conn.
func New(d dialect.Dialect, conn connection.Config, opts ...Option) (*Generator, error) {
	g := &Generator{log: logger.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.Configure(d, conn); err != nil {
		return nil, err
	}
	return g, nil
}

// Dialect returns the current dialect.
func (g *Generator) Dialect() dialect.Dialect { return g.dialect }

// Connection returns the current connection configuration.
func (g *Generator) Connection() connection.Config { return g.conn }

// IsGeneric reports whether the current dialect renders through the shared
// builder.
func (g *Generator) IsGeneric() bool { return g.generic }

// SetDialect switches the dialect, keeping the connection.
func (g *Generator) SetDialect(d dialect.Dialect) error {
	return g.Configure(d, g.conn)
}

// SetConnection replaces the connection, keeping the dialect.
func (g *Generator) SetConnection(conn connection.Config) error {
	return g.Configure(g.dialect, conn)
}

// Configure sets dialect and connection together and rebuilds. On error
// nothing changes.
func (g *Generator) Configure(d dialect.Dialect, conn connection.Config) error {
	if g.log == nil {
		g.log = logger.Nop()
	}

	generic, b, c, err := construct(d, conn)
	if err != nil {
		g.log.WarnWith("generator reconfiguration rejected", err, map[string]interface{}{
			"dialect":  d.String(),
			"endpoint": conn.Redacted().Endpoint(),
		})
		return err
	}

	g.dialect, g.conn = d, conn
	g.generic, g.builder, g.client = generic, b, c

	fields := map[string]interface{}{
		"dialect": d.String(),
		"flavor":  string(b.Flavor()),
		"generic": generic,
	}
	if c != nil {
		fields["target"] = c.Target()
	}
	g.log.DebugWith("generator reconfigured", fields)
	return nil
}

// construct builds the renderer for (d, conn). Unrecognized dialects fail
// before anything is built.
func construct(d dialect.Dialect, conn connection.Config) (bool, *sqlbuilder.Builder, clients.Client, error) {
	generic, err := d.IsGeneric()
	if err != nil {
		return false, nil, nil, err
	}
	if !generic {
		c, err := clients.New(d, conn)
		if err != nil {
			return false, nil, nil, err
		}
		return false, c.Builder(), c, nil
	}

	f, err := d.Flavor()
	if err != nil {
		return false, nil, nil, err
	}
	b, err := sqlbuilder.New(f)
	if err != nil {
		return false, nil, nil, err
	}
	return true, b, nil, nil
}

// BuildSQL renders the CREATE TABLE statement for s. Flavors that need
// separate comment statements return several statements joined by
// sqlbuilder.StatementSeparator.
func (g *Generator) BuildSQL(s ddl.Schema) (string, error) {
	if g.builder == nil {
		return "", errs.New(errs.ErrKindRender, "generator: no builder configured, set a dialect and connection first")
	}
	if err := s.Validate(); err != nil {
		return "", err
	}

	b := g.builder
	sb := b.Schema()
	switch {
	case s.Schema != "":
		sb = b.WithSchema(s.Schema)
	case !g.generic:
		sb = b.WithSchema(g.client.Namespace())
	}

	// Generic dialects leave auto-increment columns out of the table-level
	// key. The builder keys them inline only when no other primary column
	// is declared.
	pks := s.PrimaryKeys(g.generic)

	sql := sb.CreateTable(s.Name, func(t *sqlbuilder.Table) {
		if len(pks) > 0 {
			t.Primary(pks)
		}
		for _, item := range s.Columns {
			column(b, t, item)
		}
	}).ToQuery()

	if g.dialect == dialect.Firebird {
		return repairFirebird(sql, g.conn.DBName)
	}
	return sql, nil
}

func column(b *sqlbuilder.Builder, t *sqlbuilder.Table, item ddl.SchemaItem) {
	var col *sqlbuilder.Column
	if item.IsAutoIncrement() {
		col = t.Increments(item.ColumnName)
	} else {
		col = t.SpecificType(item.ColumnName, item.DataType)
	}
	if item.DefaultValue != "" {
		col.DefaultTo(b.Raw(item.DefaultValue))
	}
	if item.Unsigned {
		col.Unsigned()
	}
	if item.Comment != "" {
		col.Comment(item.Comment)
	}
	if item.Nullable {
		col.Nullable()
	} else {
		col.NotNullable()
	}
}

// BuildAll renders every schema in order and joins the results with
// sqlbuilder.StatementSeparator.
func (g *Generator) BuildAll(schemas []ddl.Schema) (string, error) {
	if len(schemas) == 0 {
		return "", errs.New(errs.ErrKindRender, "generator: no tables to render")
	}
	out := make([]string, 0, len(schemas))
	for i, s := range schemas {
		sql, err := g.BuildSQL(s)
		if err != nil {
			return "", errs.Wrap(errs.KindOf(err), fmt.Sprintf("table %d (%s)", i, s.Name), err)
		}
		out = append(out, sql)
	}
	return strings.Join(out, sqlbuilder.StatementSeparator), nil
}
