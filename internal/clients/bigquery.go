package clients

import (
	"github.com/koustreak/ddlgen/internal/connection"
	"github.com/koustreak/ddlgen/internal/dialect"
)

// BigQueryConfig is the connection a bigquery client is created with.
type BigQueryConfig struct {
	ProjectID   string
	KeyFilename string
	// APIEndpoint overrides the cloud endpoint, e.g. for a local emulator.
	// Empty means the default endpoint.
	APIEndpoint string
}

// BigQuery renders GoogleSQL DDL.
type BigQuery struct {
	base
	cfg BigQueryConfig
}

// NewBigQuery builds a bigquery client. The project id comes from the
// nested options, falling back to DBName. When both host and port are set
// the API endpoint is redirected to http://host:port.
func NewBigQuery(conn connection.Config) (*BigQuery, error) {
	project := conn.BigQuery.ProjectID
	if project == "" {
		project = conn.DBName
	}
	if err := missing(dialect.BigQuery, [2]string{"bigQueryOptions.projectId", project}); err != nil {
		return nil, err
	}

	// Unqualified tables land in DBName when it names a dataset, else the project.
	ns := conn.DBName
	if ns == "" {
		ns = project
	}
	b, err := newBase(dialect.BigQuery, ns)
	if err != nil {
		return nil, err
	}

	cfg := BigQueryConfig{ProjectID: project, KeyFilename: conn.BigQuery.KeyFilename}
	if conn.Host != "" && conn.Port != "" {
		cfg.APIEndpoint = "http://" + conn.Endpoint()
	}
	return &BigQuery{base: b, cfg: cfg}, nil
}

// Config returns the client configuration.
func (c *BigQuery) Config() BigQueryConfig { return c.cfg }

// Target returns the project path, prefixed by the endpoint override if any.
func (c *BigQuery) Target() string {
	if c.cfg.APIEndpoint == "" {
		return "projects/" + c.cfg.ProjectID
	}
	return c.cfg.APIEndpoint + "/projects/" + c.cfg.ProjectID
}
