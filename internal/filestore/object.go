package filestore

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/koustreak/ddlgen/internal/errs"
)

// ContentTypeSQL is the content type rendered DDL is stored with.
const ContentTypeSQL = "application/sql"

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Bucket       string
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// Object is a streaming handle to an object's content.
// The caller MUST call Close() after reading.
type Object interface {
	io.ReadCloser
	Info() *ObjectInfo
}

// Location addresses one object.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return l.Bucket + "/" + l.Key
}

// ParseLocation parses "bucket/key/with/slashes". A bare key uses
// defaultBucket.
func ParseLocation(s, defaultBucket string) (Location, error) {
	s = strings.TrimPrefix(s, "s3://")
	bucket, key, ok := strings.Cut(s, "/")
	if !ok {
		bucket, key = defaultBucket, s
	}
	if bucket == "" || key == "" {
		return Location{}, errs.New(errs.ErrKindInvalidInput, fmt.Sprintf("filestore: invalid location %q, want bucket/key", s))
	}
	return Location{Bucket: bucket, Key: key}, nil
}
