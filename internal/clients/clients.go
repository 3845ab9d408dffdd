// Package clients constructs the specialized clients for dialects the shared
// builder cannot serve on its own (firebird, bigquery, cassandra).
//
// Construction only assembles configuration values. No client dials a
// server: every constructor is synchronous and side-effect free, and a
// missing required field fails with ErrKindInvalidConnectionConfig.
package clients

import (
	"fmt"

	"github.com/koustreak/ddlgen/internal/connection"
	"github.com/koustreak/ddlgen/internal/dialect"
	"github.com/koustreak/ddlgen/internal/errs"
	"github.com/koustreak/ddlgen/internal/sqlbuilder"
)

// Client is a specialized client ready to render statements.
type Client interface {
	// Dialect is the dialect the client was built for.
	Dialect() dialect.Dialect
	// Builder renders statements in the client's flavor.
	Builder() *sqlbuilder.Builder
	// Namespace is the qualifier used when a schema declares none.
	Namespace() string
	// Target describes where the client would connect, with secrets
	// masked. It is meant for logs.
	Target() string
}

// New constructs the specialized client for d from conn.
func New(d dialect.Dialect, conn connection.Config) (Client, error) {
	var (
		c   Client
		err error
	)
	switch d {
	case dialect.Firebird:
		c, err = NewFirebird(conn)
	case dialect.BigQuery:
		c, err = NewBigQuery(conn)
	case dialect.Cassandra:
		c, err = NewCassandra(conn)
	default:
		return nil, errs.New(errs.ErrKindUnsupportedDialect, fmt.Sprintf("clients: %s has no specialized client", d))
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// base carries the builder every specialized client renders through.
type base struct {
	dialect   dialect.Dialect
	builder   *sqlbuilder.Builder
	namespace string
}

func newBase(d dialect.Dialect, namespace string) (base, error) {
	f, err := d.Flavor()
	if err != nil {
		return base{}, err
	}
	b, err := sqlbuilder.New(f)
	if err != nil {
		return base{}, err
	}
	return base{dialect: d, builder: b, namespace: namespace}, nil
}

func (b base) Dialect() dialect.Dialect     { return b.dialect }
func (b base) Builder() *sqlbuilder.Builder { return b.builder }
func (b base) Namespace() string            { return b.namespace }

// missing reports the first empty required field.
func missing(d dialect.Dialect, fields ...[2]string) error {
	for _, f := range fields {
		if f[1] == "" {
			return errs.New(errs.ErrKindInvalidConnectionConfig, fmt.Sprintf("%s: connection %s is required", d, f[0]))
		}
	}
	return nil
}
