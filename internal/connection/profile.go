package connection

import (
	"fmt"
	"os"
	"sort"

	"github.com/koustreak/ddlgen/internal/dialect"
	"github.com/koustreak/ddlgen/internal/errs"
	"go.yaml.in/yaml/v3"
)

// Profile is a named, saved connection: a dialect plus either explicit
// fields or a DSN (fields set explicitly win over values parsed from DSN).
type Profile struct {
	Dialect    dialect.Dialect `yaml:"dialect"`
	DSN        string          `yaml:"dsn,omitempty"`
	Connection Config          `yaml:"connection"`
}

// profilesFile is the on-disk layout:
//
//	profiles:
//	  warehouse:
//	    dialect: bigquery
//	    connection:
//	      host: localhost
//	      port: "9050"
//	      bigQueryOptions: {projectId: test-project}
type profilesFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profiles is a set of named profiles.
type Profiles map[string]Profile

// LoadProfiles reads a profiles YAML file.
func LoadProfiles(path string) (Profiles, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, fmt.Sprintf("read profiles %s", path), err)
	}
	return ParseProfiles(raw)
}

// ParseProfiles decodes profiles YAML.
func ParseProfiles(raw []byte) (Profiles, error) {
	var f profilesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		// dialect.UnmarshalText already reports a typed error.
		if errs.KindOf(err) != errs.ErrKindUnknown {
			return nil, err
		}
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "decode profiles", err)
	}
	for name, p := range f.Profiles {
		if !p.Dialect.Valid() {
			return nil, errs.New(errs.ErrKindUnsupportedDialect, fmt.Sprintf("profile %s: dialect is required", name))
		}
	}
	return Profiles(f.Profiles), nil
}

// Names returns profile names in sorted order.
func (ps Profiles) Names() []string {
	names := make([]string, 0, len(ps))
	for n := range ps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the dialect and effective connection for the named
// profile.
func (ps Profiles) Resolve(name string) (dialect.Dialect, Config, error) {
	p, ok := ps[name]
	if !ok {
		return dialect.Unknown, Config{}, errs.New(errs.ErrKindNotFound, fmt.Sprintf("profile %q not found", name))
	}
	cfg, err := p.Resolve()
	return p.Dialect, cfg, err
}

// Resolve merges the DSN (if any) with explicit fields.
func (p Profile) Resolve() (Config, error) {
	if p.DSN == "" {
		return p.Connection, nil
	}
	base, err := ParseDSN(p.Dialect, p.DSN)
	if err != nil {
		return Config{}, err
	}
	return Merge(base, p.Connection), nil
}

// Merge returns base with every non-empty field of override applied.
func Merge(base, override Config) Config {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.Host, override.Host)
	set(&base.Port, override.Port)
	set(&base.User, override.User)
	set(&base.Password, override.Password)
	set(&base.DBName, override.DBName)
	set(&base.BigQuery.ProjectID, override.BigQuery.ProjectID)
	set(&base.BigQuery.KeyFilename, override.BigQuery.KeyFilename)
	set(&base.Cassandra.Consistency, override.Cassandra.Consistency)
	set(&base.Cassandra.LocalDC, override.Cassandra.LocalDC)
	return base
}
