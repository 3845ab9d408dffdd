// Package dialect identifies the database systems ddlgen can target and
// classifies each one as generic or specialized.
//
// A generic dialect is rendered by the shared builder, parameterized only by
// a flavor. A specialized dialect needs a bespoke client constructed from
// connection parameters (see internal/clients).
package dialect

import (
	"fmt"
	"strings"

	"github.com/koustreak/ddlgen/internal/errs"
)

// Dialect identifies the target database system.
type Dialect int

const (
	Unknown Dialect = iota
	PostgreSQL
	Redshift
	CockroachDB
	MySQL
	MariaDB
	TiDB
	SQLServer
	SQLite
	LibSQL
	Oracle
	Cassandra
	BigQuery
	Firebird
)

// Flavor names the builder variant (knex client id) a generic dialect is
// rendered with. Specialized dialects carry the flavor of their client.
type Flavor string

const (
	FlavorPostgres  Flavor = "pg"
	FlavorRedshift  Flavor = "redshift"
	FlavorMySQL     Flavor = "mysql"
	FlavorMSSQL     Flavor = "mssql"
	FlavorSQLite    Flavor = "sqlite3"
	FlavorOracle    Flavor = "oracledb"
	FlavorCassandra Flavor = "cassandra"
	FlavorBigQuery  Flavor = "bigquery"
	FlavorFirebird  Flavor = "firebird"
)

var names = map[Dialect]string{
	PostgreSQL:  "postgresql",
	Redshift:    "redshift",
	CockroachDB: "cockroachdb",
	MySQL:       "mysql",
	MariaDB:     "mariadb",
	TiDB:        "tidb",
	SQLServer:   "sqlserver",
	SQLite:      "sqlite",
	LibSQL:      "libsql",
	Oracle:      "oracle",
	Cassandra:   "cassandra",
	BigQuery:    "bigquery",
	Firebird:    "firebird",
}

// aliases accepted by Parse in addition to the canonical names.
var aliases = map[string]Dialect{
	"postgres": PostgreSQL,
	"pg":       PostgreSQL,
	"mssql":    SQLServer,
	"sqlite3":  SQLite,
	"oracledb": Oracle,
}

// All returns every recognized dialect in declaration order.
func All() []Dialect {
	out := make([]Dialect, 0, len(names))
	for d := PostgreSQL; d <= Firebird; d++ {
		out = append(out, d)
	}
	return out
}

// Parse maps an identifier to a Dialect. Matching is case-insensitive and
// ignores surrounding whitespace.
func Parse(s string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for d, name := range names {
		if name == key {
			return d, nil
		}
	}
	if d, ok := aliases[key]; ok {
		return d, nil
	}
	return Unknown, errs.New(errs.ErrKindUnsupportedDialect, fmt.Sprintf("unknown dialect %q", s))
}

func (d Dialect) String() string {
	if name, ok := names[d]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether d is one of the recognized dialects.
func (d Dialect) Valid() bool {
	_, ok := names[d]
	return ok
}

// IsGeneric reports whether d is rendered by the shared builder. It fails
// with ErrKindUnsupportedDialect for values outside the closed set.
func (d Dialect) IsGeneric() (bool, error) {
	switch d {
	case Cassandra, BigQuery, Firebird:
		return false, nil
	case PostgreSQL, Redshift, CockroachDB, MySQL, MariaDB, TiDB,
		SQLServer, SQLite, LibSQL, Oracle:
		return true, nil
	default:
		return false, errs.New(errs.ErrKindUnsupportedDialect, fmt.Sprintf("unsupported dialect %d", int(d)))
	}
}

// Flavor returns the builder flavor for d.
func (d Dialect) Flavor() (Flavor, error) {
	switch d {
	case PostgreSQL, CockroachDB:
		return FlavorPostgres, nil
	case Redshift:
		return FlavorRedshift, nil
	case MySQL, MariaDB, TiDB:
		return FlavorMySQL, nil
	case SQLServer:
		return FlavorMSSQL, nil
	case SQLite, LibSQL:
		return FlavorSQLite, nil
	case Oracle:
		return FlavorOracle, nil
	case Cassandra:
		return FlavorCassandra, nil
	case BigQuery:
		return FlavorBigQuery, nil
	case Firebird:
		return FlavorFirebird, nil
	default:
		return "", errs.New(errs.ErrKindUnsupportedDialect, fmt.Sprintf("unsupported dialect %d", int(d)))
	}
}

// MarshalText implements encoding.TextMarshaler so dialects round-trip
// through YAML and JSON as their canonical names.
func (d Dialect) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, errs.New(errs.ErrKindUnsupportedDialect, fmt.Sprintf("unsupported dialect %d", int(d)))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dialect) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
