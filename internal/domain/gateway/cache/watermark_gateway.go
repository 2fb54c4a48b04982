package cache

import (
	"context"
)

// WatermarkGateway stores the identity of the last successfully processed
// snapshot, so unchanged snapshots can be skipped.
type WatermarkGateway interface {
	// LastSnapshot returns the stored fingerprint, "" when none was recorded
	LastSnapshot(ctx context.Context) (string, error)

	// SaveSnapshot stores the fingerprint of a processed snapshot
	SaveSnapshot(ctx context.Context, fingerprint string) error
}
