package clients

import (
	"net/url"

	"github.com/koustreak/ddlgen/internal/connection"
	"github.com/koustreak/ddlgen/internal/dialect"
)

// FirebirdConfig is the connection a firebird client is created with.
type FirebirdConfig struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	// BlobAsText makes BLOB SUB_TYPE TEXT columns read back as strings.
	BlobAsText bool
}

// DSN renders the config in the firebirdsql driver format,
// user:password@host[:port]/database.
func (c FirebirdConfig) DSN() string {
	host := c.Host
	if c.Port != "" {
		host += ":" + c.Port
	}
	return url.UserPassword(c.User, c.Password).String() + "@" + host + "/" + c.Database
}

// Redacted returns a copy safe for logging.
func (c FirebirdConfig) Redacted() FirebirdConfig {
	if c.Password != "" {
		c.Password = "xxxxx"
	}
	return c
}

// Firebird renders firebird DDL. Its builder qualifies table references with
// the database name, which the generator strips afterwards.
type Firebird struct {
	base
	cfg FirebirdConfig
}

// NewFirebird builds a firebird client. Host and database are required.
func NewFirebird(conn connection.Config) (*Firebird, error) {
	if err := missing(dialect.Firebird,
		[2]string{"host", conn.Host},
		[2]string{"dbName", conn.DBName},
	); err != nil {
		return nil, err
	}
	b, err := newBase(dialect.Firebird, conn.DBName)
	if err != nil {
		return nil, err
	}
	return &Firebird{
		base: b,
		cfg: FirebirdConfig{
			Host:       conn.Host,
			Port:       conn.Port,
			Database:   conn.DBName,
			User:       conn.User,
			Password:   conn.Password,
			BlobAsText: true,
		},
	}, nil
}

// Config returns the client configuration.
func (f *Firebird) Config() FirebirdConfig { return f.cfg }

// Target returns the DSN with the password masked.
func (f *Firebird) Target() string { return f.cfg.Redacted().DSN() }
