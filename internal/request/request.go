// Package request reads render requests: the tables to generate plus the
// dialect and connection to generate them for.
//
//	profile: warehouse        # or dialect/dsn/connection inline
//	tables:
//	  - name: users
//	    columns:
//	      - {columnName: id, dataType: autoincrement, primaryKey: true}
//	      - {columnName: email, dataType: varchar(255), nullable: true}
package request

import (
	"fmt"
	"os"

	"github.com/koustreak/ddlgen/internal/connection"
	"github.com/koustreak/ddlgen/internal/ddl"
	"github.com/koustreak/ddlgen/internal/dialect"
	"github.com/koustreak/ddlgen/internal/errs"
	"go.yaml.in/yaml/v3"
)

// Request is one render job.
type Request struct {
	// Profile names an entry in a profiles file. Inline fields below
	// override what the profile sets.
	Profile    string            `yaml:"profile,omitempty" json:"profile,omitempty"`
	Dialect    dialect.Dialect   `yaml:"dialect,omitempty" json:"dialect,omitempty"`
	DSN        string            `yaml:"dsn,omitempty" json:"dsn,omitempty"`
	Connection connection.Config `yaml:"connection,omitempty" json:"connection"`
	Tables     []ddl.Schema      `yaml:"tables" json:"tables"`
}

// Load reads a request file.
func Load(path string) (*Request, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, fmt.Sprintf("read request %s", path), err)
	}
	return Parse(raw)
}

// Parse decodes request YAML.
func Parse(raw []byte) (*Request, error) {
	var r Request
	if err := yaml.Unmarshal(raw, &r); err != nil {
		if errs.KindOf(err) != errs.ErrKindUnknown {
			return nil, err
		}
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "decode request", err)
	}
	if len(r.Tables) == 0 {
		return nil, errs.New(errs.ErrKindInvalidInput, "request: no tables")
	}
	return &r, nil
}

// Resolve returns the effective dialect and connection: the named profile
// (if any) first, then the request's own DSN and fields on top.
func (r *Request) Resolve(profiles connection.Profiles) (dialect.Dialect, connection.Config, error) {
	d := dialect.Unknown
	var conn connection.Config

	if r.Profile != "" {
		var err error
		d, conn, err = profiles.Resolve(r.Profile)
		if err != nil {
			return dialect.Unknown, connection.Config{}, err
		}
	}
	if r.Dialect != dialect.Unknown {
		d = r.Dialect
	}
	if d == dialect.Unknown {
		return dialect.Unknown, connection.Config{}, errs.New(errs.ErrKindUnsupportedDialect, "request: dialect is required (set dialect or profile)")
	}
	if r.DSN != "" {
		parsed, err := connection.ParseDSN(d, r.DSN)
		if err != nil {
			return dialect.Unknown, connection.Config{}, err
		}
		conn = connection.Merge(conn, parsed)
	}
	return d, connection.Merge(conn, r.Connection), nil
}
