package dialect

import (
	"encoding/json"
	"testing"

	"github.com/koustreak/ddlgen/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Dialect
	}{
		{"postgresql", PostgreSQL},
		{"postgres", PostgreSQL},
		{"  MySQL ", MySQL},
		{"mariadb", MariaDB},
		{"mssql", SQLServer},
		{"sqlite3", SQLite},
		{"cassandra", Cassandra},
		{"bigquery", BigQuery},
		{"Firebird", Firebird},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("postgress")
	require.Error(t, err)
	assert.True(t, errs.IsUnsupportedDialect(err))
	assert.Contains(t, err.Error(), `"postgress"`)
}

func TestIsGeneric(t *testing.T) {
	specialized := map[Dialect]bool{Cassandra: true, BigQuery: true, Firebird: true}

	for _, d := range All() {
		t.Run(d.String(), func(t *testing.T) {
			generic, err := d.IsGeneric()
			require.NoError(t, err)
			assert.Equal(t, !specialized[d], generic)
		})
	}
}

func TestIsGeneric_OutsideClosedSet(t *testing.T) {
	for _, d := range []Dialect{Unknown, Dialect(99)} {
		_, err := d.IsGeneric()
		assert.True(t, errs.IsUnsupportedDialect(err))
	}
}

func TestFlavor(t *testing.T) {
	tests := map[Dialect]Flavor{
		PostgreSQL:  FlavorPostgres,
		CockroachDB: FlavorPostgres,
		Redshift:    FlavorRedshift,
		TiDB:        FlavorMySQL,
		SQLServer:   FlavorMSSQL,
		LibSQL:      FlavorSQLite,
		Oracle:      FlavorOracle,
		Firebird:    FlavorFirebird,
	}
	for d, want := range tests {
		got, err := d.Flavor()
		require.NoError(t, err)
		assert.Equal(t, want, got, d.String())
	}

	_, err := Unknown.Flavor()
	assert.True(t, errs.IsUnsupportedDialect(err))
}

func TestAll_CoversEveryName(t *testing.T) {
	all := All()
	assert.Len(t, all, len(names))
	for _, d := range all {
		assert.True(t, d.Valid())
	}
}

func TestText_RoundTrip(t *testing.T) {
	var cfg struct {
		Dialect Dialect `json:"dialect"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"dialect":"bigquery"}`), &cfg))
	assert.Equal(t, BigQuery, cfg.Dialect)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dialect":"bigquery"}`, string(out))

	err = json.Unmarshal([]byte(`{"dialect":"dbase"}`), &cfg)
	assert.True(t, errs.IsUnsupportedDialect(err))
}
