package api

import (
	"context"
	"io"

	"redfin-etl/internal/domain/model"
)

// DatasetGateway defines the interface for the remote market tracker snapshot
type DatasetGateway interface {
	// Head fetches the snapshot metadata (ETag, Last-Modified, size)
	// without downloading the body
	Head(ctx context.Context) (*model.SnapshotMeta, error)

	// Fetch streams the snapshot body. Gzip payloads are unwrapped
	// transparently, the returned reader yields the plain TSV.
	// The caller owns the reader and must close it.
	Fetch(ctx context.Context) (io.ReadCloser, *model.SnapshotMeta, error)
}
