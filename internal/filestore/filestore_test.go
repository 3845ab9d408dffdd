package filestore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/koustreak/ddlgen/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	Store
	loc         Location
	body        []byte
	size        int64
	contentType string
}

func (s *recordingStore) PutObject(_ context.Context, loc Location, r io.Reader, size int64, contentType string) (*ObjectInfo, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	s.loc, s.body, s.size, s.contentType = loc, buf.Bytes(), size, contentType
	return &ObjectInfo{Bucket: loc.Bucket, Key: loc.Key, Size: size, ContentType: contentType}, nil
}

func TestPublish(t *testing.T) {
	s := &recordingStore{}
	loc := Location{Bucket: "ddl", Key: "app/users.sql"}

	info, err := Publish(context.Background(), s, loc, "create table t (a int)")
	require.NoError(t, err)

	assert.Equal(t, loc, s.loc)
	assert.Equal(t, "create table t (a int)\n", string(s.body))
	assert.Equal(t, int64(len(s.body)), s.size)
	assert.Equal(t, ContentTypeSQL, s.contentType)
	assert.Equal(t, "ddl/app/users.sql", loc.String())
	assert.Equal(t, s.size, info.Size)

	_, err = Publish(context.Background(), s, loc, "select 1\n")
	require.NoError(t, err)
	assert.Equal(t, "select 1\n", string(s.body))
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in, def string
		want    Location
		wantErr bool
	}{
		{in: "ddl/users.sql", want: Location{Bucket: "ddl", Key: "users.sql"}},
		{in: "s3://ddl/a/b.sql", want: Location{Bucket: "ddl", Key: "a/b.sql"}},
		{in: "users.sql", def: "fallback", want: Location{Bucket: "fallback", Key: "users.sql"}},
		{in: "users.sql", wantErr: true},
		{in: "ddl/", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocation(tt.in, tt.def)
			if tt.wantErr {
				assert.True(t, errs.IsInvalidInput(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvEndpoint, "localhost:9000")
	t.Setenv(EnvAccessKey, "minioadmin")
	t.Setenv(EnvSecretKey, "minioadmin")
	t.Setenv(EnvUseSSL, "true")
	t.Setenv(EnvBucket, "ddl")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", cfg.Endpoint)
	assert.True(t, cfg.UseSSL)
	assert.Equal(t, "ddl", cfg.Bucket)

	t.Setenv(EnvUseSSL, "maybe")
	_, err = ConfigFromEnv()
	assert.True(t, errs.IsInvalidInput(err))
}

func TestConfigValidate(t *testing.T) {
	assert.True(t, errs.IsInvalidInput((&Config{}).Validate()))
	assert.True(t, errs.IsInvalidInput((&Config{Endpoint: "x"}).Validate()))
	assert.NoError(t, (&Config{Endpoint: "x", AccessKey: "a", SecretKey: "s"}).Validate())
}
