package sqlbuilder

import (
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

// ansiIdent double-quotes each part (ANSI / PostgreSQL rules) and joins
// them with dots: ("public", "users") -> "public"."users".
func ansiIdent(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}

// backtickIdent quotes for MySQL: `schema`.`table`.
func backtickIdent(parts ...string) string {
	return joinQuoted(parts, func(p string) string {
		return "`" + strings.ReplaceAll(p, "`", "``") + "`"
	})
}

// bigqueryIdent quotes for GoogleSQL, where a backtick inside a quoted
// identifier is backslash-escaped.
func bigqueryIdent(parts ...string) string {
	return joinQuoted(parts, func(p string) string {
		p = strings.ReplaceAll(p, `\`, `\\`)
		return "`" + strings.ReplaceAll(p, "`", "\\`") + "`"
	})
}

// bracketIdent quotes for SQL Server: [dbo].[users], escaping ] as ]].
func bracketIdent(parts ...string) string {
	return joinQuoted(parts, func(p string) string {
		return "[" + strings.ReplaceAll(p, "]", "]]") + "]"
	})
}

// bareIdent emits identifiers as given.
func bareIdent(parts ...string) string {
	return strings.Join(parts, ".")
}

func joinQuoted(parts []string, quote func(string) string) string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = quote(p)
	}
	return strings.Join(out, ".")
}

// pgLiteral quotes a PostgreSQL string literal, switching to E'' syntax
// when the text contains backslashes.
func pgLiteral(s string) string {
	return pq.QuoteLiteral(s)
}

func stdLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func mysqlLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func nationalLiteral(s string) string {
	return "N" + stdLiteral(s)
}
