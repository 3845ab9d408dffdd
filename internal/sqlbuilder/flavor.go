package sqlbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/koustreak/ddlgen/internal/dialect"
)

// modifier is a column clause the flavor may emit after the type.
type modifier int

const (
	modUnsigned modifier = iota
	modNullable
	modDefault
	modComment
)

type commentStyle int

const (
	commentNone      commentStyle = iota
	commentInline                 // col ... comment 'text'
	commentStatement              // comment on column t.col is 'text'
	commentProperty               // exec sp_addextendedproperty ...
	commentOption                 // col ... options(description="text")
)

// compiler holds everything that differs between flavors.
type compiler struct {
	flavor  dialect.Flavor
	ident   func(parts ...string) string
	literal func(string) string

	// increments is the column type (plus clauses) emitted by Increments.
	increments string
	// incrementsKey follows increments only when the table declares no
	// primary-key constraint of its own.
	incrementsKey string
	// incrementsUnique adds a unique key for an increments column left
	// out of the table's primary key. MySQL requires the auto_increment
	// column to be indexed.
	incrementsUnique bool
	// incrementsUnsigned suppresses the unsigned modifier when the
	// increments type already carries it.
	incrementsUnsigned bool

	// order lists the modifiers the flavor supports, in emission order.
	order       []modifier
	nullable    string
	notNullable string
	comment     commentStyle

	// defaultNamespace is used where a comment statement needs an explicit
	// namespace and the table has none.
	defaultNamespace string

	primaryKey func(table string, cols []string) string
}

var compilers = map[dialect.Flavor]*compiler{}

func register(cp *compiler) {
	if cp.primaryKey == nil {
		cp.primaryKey = cp.namedPrimaryKey
	}
	compilers[cp.flavor] = cp
}

func init() {
	register(&compiler{
		flavor:        dialect.FlavorPostgres,
		ident:         ansiIdent,
		literal:       pgLiteral,
		increments:    "serial",
		incrementsKey: "primary key",
		order:         []modifier{modNullable, modDefault},
		nullable:      "null",
		notNullable:   "not null",
		comment:       commentStatement,
	})
	register(&compiler{
		flavor:        dialect.FlavorRedshift,
		ident:         ansiIdent,
		literal:       pgLiteral,
		increments:    "integer identity(1,1)",
		incrementsKey: "primary key",
		order:         []modifier{modNullable, modDefault},
		nullable:      "null",
		notNullable:   "not null",
		comment:       commentStatement,
	})
	register(&compiler{
		flavor:             dialect.FlavorMySQL,
		ident:              backtickIdent,
		literal:            mysqlLiteral,
		increments:         "int unsigned auto_increment",
		incrementsKey:      "primary key",
		incrementsUnique:   true,
		incrementsUnsigned: true,
		order:              []modifier{modUnsigned, modNullable, modDefault, modComment},
		nullable:           "null",
		notNullable:        "not null",
		comment:            commentInline,
	})
	register(&compiler{
		flavor:           dialect.FlavorMSSQL,
		ident:            bracketIdent,
		literal:          nationalLiteral,
		increments:       "int identity(1,1)",
		incrementsKey:    "primary key",
		order:            []modifier{modNullable, modDefault},
		nullable:         "null",
		notNullable:      "not null",
		comment:          commentProperty,
		defaultNamespace: "dbo",
	})
	register(&compiler{
		flavor:        dialect.FlavorSQLite,
		ident:         ansiIdent,
		literal:       stdLiteral,
		increments:    "integer",
		incrementsKey: "primary key autoincrement",
		order:         []modifier{modNullable, modDefault},
		nullable:      "null",
		notNullable:   "not null",
		comment:       commentNone,
	})
	register(&compiler{
		flavor:        dialect.FlavorOracle,
		ident:         ansiIdent,
		literal:       stdLiteral,
		increments:    "integer generated by default as identity",
		incrementsKey: "primary key",
		order:         []modifier{modDefault, modNullable},
		nullable:      "null",
		notNullable:   "not null",
		comment:       commentStatement,
	})

	// Specialized clients. Their increments never carry an inline primary
	// key: the table-level constraint lists every primary column.
	register(&compiler{
		flavor:      dialect.FlavorFirebird,
		ident:       bareIdent,
		literal:     stdLiteral,
		increments:  "integer generated by default as identity",
		order:       []modifier{modDefault, modNullable},
		notNullable: "not null",
		comment:     commentStatement,
	})
	register(&compiler{
		flavor:      dialect.FlavorBigQuery,
		ident:       bigqueryIdent,
		literal:     stdLiteral,
		increments:  "int64",
		order:       []modifier{modDefault, modNullable, modComment},
		notNullable: "not null",
		comment:     commentOption,
		primaryKey: func(_ string, cols []string) string {
			return fmt.Sprintf("primary key (%s) not enforced", joinIdents(bigqueryIdent, cols))
		},
	})
	register(&compiler{
		flavor:     dialect.FlavorCassandra,
		ident:      ansiIdent,
		literal:    stdLiteral,
		increments: "int",
		comment:    commentNone,
		primaryKey: func(_ string, cols []string) string {
			return fmt.Sprintf("primary key (%s)", joinIdents(ansiIdent, cols))
		},
	})
}

func (cp *compiler) tableRef(namespace, table string) string {
	if namespace == "" {
		return cp.ident(table)
	}
	return cp.ident(namespace, table)
}

// columnDef renders one column. keyed reports whether an increments column
// may carry its inline key, i.e. the table has no primary-key constraint.
func (cp *compiler) columnDef(col *Column, keyed bool) string {
	var sb strings.Builder
	sb.WriteString(cp.ident(col.name))
	sb.WriteByte(' ')
	if col.increments {
		sb.WriteString(cp.increments)
		if keyed && cp.incrementsKey != "" {
			sb.WriteByte(' ')
			sb.WriteString(cp.incrementsKey)
		}
	} else {
		sb.WriteString(col.typ)
	}
	for _, m := range cp.order {
		if clause := cp.modifier(m, col); clause != "" {
			sb.WriteByte(' ')
			sb.WriteString(clause)
		}
	}
	return sb.String()
}

func (cp *compiler) modifier(m modifier, col *Column) string {
	switch m {
	case modUnsigned:
		if col.unsigned && !(col.increments && cp.incrementsUnsigned) {
			return "unsigned"
		}
	case modNullable:
		if col.nullable == nil {
			return ""
		}
		if *col.nullable {
			return cp.nullable
		}
		return cp.notNullable
	case modDefault:
		if col.def != nil {
			return "default " + string(*col.def)
		}
	case modComment:
		if col.comment == nil {
			return ""
		}
		switch cp.comment {
		case commentInline:
			return "comment " + cp.literal(*col.comment)
		case commentOption:
			return "options(description=" + strconv.Quote(*col.comment) + ")"
		}
	}
	return ""
}

func (cp *compiler) commentStatement(namespace, table string, col *Column) string {
	text := *col.comment
	switch cp.comment {
	case commentStatement:
		ref := cp.ident(table, col.name)
		if namespace != "" {
			ref = cp.ident(namespace, table, col.name)
		}
		return fmt.Sprintf("comment on column %s is %s", ref, cp.literal(text))
	case commentProperty:
		if namespace == "" {
			namespace = cp.defaultNamespace
		}
		return fmt.Sprintf(
			"exec sp_addextendedproperty N'MS_Description', %s, N'Schema', %s, N'Table', %s, N'Column', %s",
			cp.literal(text), cp.literal(namespace), cp.literal(table), cp.literal(col.name),
		)
	}
	return ""
}

func (cp *compiler) namedPrimaryKey(table string, cols []string) string {
	return fmt.Sprintf("constraint %s primary key (%s)", cp.ident(table+"_pkey"), joinIdents(cp.ident, cols))
}

func joinIdents(ident func(parts ...string) string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
	}
	return strings.Join(quoted, ", ")
}
