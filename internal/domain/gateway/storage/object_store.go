package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound is returned when the requested object does not exist.
// Implementations map their own not-found errors onto it.
var ErrObjectNotFound = errors.New("object not found")

// IsNotExist reports whether the error means the object does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// ObjectInfo holds the metadata of a stored object
type ObjectInfo struct {
	Key          string
	SizeBytes    int64
	ETag         string
	LastModified time.Time
}

// ObjectStore defines the interface for bucket object operations
type ObjectStore interface {
	// Upload stores the reader's content under bucket/key
	Upload(ctx context.Context, bucket, key string, body io.Reader) error

	// UploadFile stores a local file under bucket/key
	// Returns the uploaded size in bytes
	UploadFile(ctx context.Context, bucket, key, path string) (int64, error)

	// Download opens the object for reading
	// The caller owns the reader and must close it
	Download(ctx context.Context, bucket, key string) (io.ReadCloser, error)

	// Head fetches the object metadata without the body
	Head(ctx context.Context, bucket, key string) (*ObjectInfo, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, bucket, key string) error

	// CheckBucket verifies the bucket is reachable
	CheckBucket(ctx context.Context, bucket string) error
}
