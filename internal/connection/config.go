// Package connection holds the connection parameters the generator is
// configured with. Nothing here dials a server: DSN parsing and profile
// loading only assemble configuration values.
package connection

import "net"

// Config is the connection configuration supplied by the host application.
// Which fields are required depends on the dialect; specialized clients
// validate them when they are constructed.
type Config struct {
	Host     string `yaml:"host" json:"host"`
	Port     string `yaml:"port" json:"port"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`

	// DBName is the database, keyspace or default dataset name.
	DBName string `yaml:"dbName" json:"dbName"`

	BigQuery  BigQueryOptions  `yaml:"bigQueryOptions" json:"bigQueryOptions"`
	Cassandra CassandraOptions `yaml:"cassandraOptions" json:"cassandraOptions"`
}

// BigQueryOptions are the nested options only the bigquery client reads.
type BigQueryOptions struct {
	ProjectID   string `yaml:"projectId" json:"projectId"`
	KeyFilename string `yaml:"keyFilename" json:"keyFilename"`
}

// CassandraOptions are the nested options only the cassandra client reads.
type CassandraOptions struct {
	// Consistency is a gocql consistency name such as "LOCAL_QUORUM".
	Consistency string `yaml:"consistency" json:"consistency"`
	// LocalDC enables DC-aware host selection when set.
	LocalDC string `yaml:"localDC" json:"localDC"`
}

// Redacted returns a copy safe for logging.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = "****"
	}
	return c
}

// Endpoint returns "host:port", or just host when no port is set.
func (c Config) Endpoint() string {
	if c.Port == "" {
		return c.Host
	}
	return net.JoinHostPort(c.Host, c.Port)
}
