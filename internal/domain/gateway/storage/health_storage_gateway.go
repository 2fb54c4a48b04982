package storage

import (
	"context"
	"time"

	"redfin-etl/internal/domain/model"
)

type HealthStorageGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}

// BucketHealthGateway reports reachability of the configured buckets.
type BucketHealthGateway struct {
	store   ObjectStore
	buckets []string
}

var _ HealthStorageGateway = (*BucketHealthGateway)(nil)

func NewBucketHealthGateway(store ObjectStore, buckets ...string) *BucketHealthGateway {
	return &BucketHealthGateway{store: store, buckets: buckets}
}

func (gateway *BucketHealthGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := model.StatusUp
	details := make(map[string]string)

	for _, bucket := range gateway.buckets {
		if err := gateway.store.CheckBucket(checkCtx, bucket); err != nil {
			status = model.StatusDown
			details[bucket] = err.Error()
			continue
		}
		details[bucket] = string(model.StatusUp)
	}

	return model.ComponentHealthStatus{
		Status:  status,
		Details: details,
	}
}
