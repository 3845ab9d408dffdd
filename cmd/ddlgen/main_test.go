package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/koustreak/ddlgen/internal/filestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestYAML = `
tables:
  - name: users
    columns:
      - {columnName: id, dataType: autoincrement, primaryKey: true}
      - {columnName: email, dataType: varchar(255), nullable: true}
`

const profilesYAML = `
profiles:
  legacy:
    dialect: firebird
    dsn: SYSDBA:masterkey@fb:3050/MYDB
`

type memStore struct {
	filestore.Store
	objects map[string]string
}

func (m *memStore) PutObject(_ context.Context, loc filestore.Location, r io.Reader, size int64, ct string) (*filestore.ObjectInfo, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.objects[loc.String()] = string(b)
	return &filestore.ObjectInfo{Bucket: loc.Bucket, Key: loc.Key, Size: size, ContentType: ct}, nil
}

func (m *memStore) Close() error { return nil }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Stdout(t *testing.T) {
	req := writeFile(t, "req.yaml", requestYAML)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-request", req, "-dialect", "mysql"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "create table `users` (`id` int unsigned auto_increment primary key not null, `email` varchar(255) null)\n", stdout.String())
}

func TestRun_ProfileAndOutFile(t *testing.T) {
	req := writeFile(t, "req.yaml", requestYAML)
	profiles := writeFile(t, "profiles.yaml", profilesYAML)
	out := filepath.Join(t.TempDir(), "schema.sql")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"-request", req, "-profiles", profiles, "-profile", "legacy", "-out", out, "-log-format", "json",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "create table users (id integer generated by default as identity not null, email varchar(255), constraint users_pkey primary key (id))\n", string(got))
	assert.Contains(t, stderr.String(), "ddl written")
}

func TestRun_Upload(t *testing.T) {
	store := &memStore{objects: map[string]string{}}
	prev := openStore
	openStore = func(context.Context) (filestore.Store, string, error) { return store, "ddl", nil }
	t.Cleanup(func() { openStore = prev })

	req := writeFile(t, "req.yaml", requestYAML)
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-request", req, "-dialect", "sqlite", "-upload", "users.sql"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, stdout.String(), store.objects["ddl/users.sql"])
}

func TestRun_Errors(t *testing.T) {
	req := writeFile(t, "req.yaml", requestYAML)
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"bad flag", []string{"-nope"}, 2},
		{"no request", []string{}, 1},
		{"unknown dialect", []string{"-request", req, "-dialect", "dbase"}, 1},
		{"no dialect", []string{"-request", req}, 1},
		{"missing connection", []string{"-request", req, "-dialect", "cassandra"}, 1},
		{"missing profiles file", []string{"-request", req, "-profiles", "/nonexistent.yaml"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(context.Background(), tt.args, &stdout, &stderr))
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), []string{"-version"}, &stdout, io.Discard))
	assert.Contains(t, stdout.String(), version)
}
