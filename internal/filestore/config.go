package filestore

import (
	"os"
	"strconv"

	"github.com/koustreak/ddlgen/internal/errs"
)

// Config holds the settings for the object store rendered DDL is uploaded
// to. Only S3-compatible stores (MinIO, S3) are supported.
type Config struct {
	// Endpoint is host:port, e.g. "localhost:9000" for a local MinIO.
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSSL"`
	// Region is only needed by region-aware backends. Leave empty for MinIO.
	Region string `yaml:"region"`
	// Bucket is used when an upload target names no bucket.
	Bucket string `yaml:"bucket"`
	// CreateBucket creates a missing bucket before the first upload.
	CreateBucket bool `yaml:"createBucket"`
}

// Environment variables read by ConfigFromEnv.
const (
	EnvEndpoint  = "DDLGEN_S3_ENDPOINT"
	EnvAccessKey = "DDLGEN_S3_ACCESS_KEY"
	EnvSecretKey = "DDLGEN_S3_SECRET_KEY"
	EnvUseSSL    = "DDLGEN_S3_USE_SSL"
	EnvRegion    = "DDLGEN_S3_REGION"
	EnvBucket    = "DDLGEN_S3_BUCKET"
)

// ConfigFromEnv builds a Config from DDLGEN_S3_* variables.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		Endpoint:  os.Getenv(EnvEndpoint),
		AccessKey: os.Getenv(EnvAccessKey),
		SecretKey: os.Getenv(EnvSecretKey),
		Region:    os.Getenv(EnvRegion),
		Bucket:    os.Getenv(EnvBucket),
	}
	if v := os.Getenv(EnvUseSSL); v != "" {
		ssl, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errs.Wrap(errs.ErrKindInvalidInput, EnvUseSSL+" must be a boolean", err)
		}
		cfg.UseSSL = ssl
	}
	return cfg, cfg.Validate()
}

// Validate checks that the store can be addressed.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errs.New(errs.ErrKindInvalidInput, "filestore: endpoint is required")
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return errs.New(errs.ErrKindInvalidInput, "filestore: access key and secret key are required")
	}
	return nil
}
