package clients

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gocql/gocql"
	"github.com/koustreak/ddlgen/internal/connection"
	"github.com/koustreak/ddlgen/internal/dialect"
	"github.com/koustreak/ddlgen/internal/errs"
)

// Cassandra renders CQL. The cluster config is assembled but never used to
// open a session here.
type Cassandra struct {
	base
	cluster *gocql.ClusterConfig
}

// NewCassandra builds a cassandra client. Host (comma separated for several
// contact points) and keyspace (DBName) are required.
func NewCassandra(conn connection.Config) (*Cassandra, error) {
	if err := missing(dialect.Cassandra,
		[2]string{"host", conn.Host},
		[2]string{"dbName", conn.DBName},
	); err != nil {
		return nil, err
	}

	var hosts []string
	for _, h := range strings.Split(conn.Host, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = conn.DBName

	if conn.Port != "" {
		port, err := strconv.Atoi(conn.Port)
		if err != nil || port <= 0 || port > 65535 {
			return nil, errs.New(errs.ErrKindInvalidConnectionConfig, fmt.Sprintf("cassandra: invalid port %q", conn.Port))
		}
		cluster.Port = port
	}
	if conn.User != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{Username: conn.User, Password: conn.Password}
	}
	if c := conn.Cassandra.Consistency; c != "" {
		consistency, err := gocql.ParseConsistencyWrapper(c)
		if err != nil {
			return nil, errs.Wrap(errs.ErrKindInvalidConnectionConfig, "cassandra: invalid consistency", err)
		}
		cluster.Consistency = consistency
	}
	if dc := conn.Cassandra.LocalDC; dc != "" {
		cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.DCAwareRoundRobinPolicy(dc))
	}

	b, err := newBase(dialect.Cassandra, conn.DBName)
	if err != nil {
		return nil, err
	}
	return &Cassandra{base: b, cluster: cluster}, nil
}

// Cluster returns the assembled cluster configuration.
func (c *Cassandra) Cluster() *gocql.ClusterConfig { return c.cluster }

// Target returns the contact points and keyspace, host1,host2/keyspace.
func (c *Cassandra) Target() string {
	return strings.Join(c.cluster.Hosts, ",") + "/" + c.cluster.Keyspace
}
