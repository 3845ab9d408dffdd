// Package filestore stores rendered DDL in an object store.
//
// Callers depend only on this package; the MinIO driver lives in
// filestore/minio.
//
// Usage:
//
//	store, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer store.Close()
//
//	info, err := filestore.Publish(ctx, store, filestore.Location{Bucket: "ddl", Key: "users.sql"}, sql)
package filestore

import (
	"context"
	"io"
	"strings"
)

// Store is implemented by every object store backend.
type Store interface {
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases held resources.
	Close() error

	// EnsureBucket creates bucket if it does not exist.
	EnsureBucket(ctx context.Context, bucket string) error

	// PutObject uploads size bytes from r to loc.
	PutObject(ctx context.Context, loc Location, r io.Reader, size int64, contentType string) (*ObjectInfo, error)

	// GetObject opens a streaming handle to loc. The caller MUST close it.
	GetObject(ctx context.Context, loc Location) (Object, error)

	// StatObject returns metadata for loc without downloading it.
	StatObject(ctx context.Context, loc Location) (*ObjectInfo, error)
}

// Publish uploads rendered SQL to loc. A trailing newline is added so the
// stored file ends like one written by hand.
func Publish(ctx context.Context, s Store, loc Location, sql string) (*ObjectInfo, error) {
	if !strings.HasSuffix(sql, "\n") {
		sql += "\n"
	}
	return s.PutObject(ctx, loc, strings.NewReader(sql), int64(len(sql)), ContentTypeSQL)
}
