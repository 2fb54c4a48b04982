package cache

import (
	"context"
	"fmt"

	"redfin-etl/pkg/redis"
)

const watermarkKey = "last_snapshot"

type RedisWatermarkGateway struct {
	cache *redis.Cache
}

var _ WatermarkGateway = (*RedisWatermarkGateway)(nil)

// NewRedisWatermarkGateway creates a watermark gateway on the snapshot cache
// namespace. The watermark never expires.
func NewRedisWatermarkGateway(client *redis.Client) *RedisWatermarkGateway {
	opts := redis.NewCacheOptions().
		WithTTL(0).
		WithCacheName("snapshot")
	return &RedisWatermarkGateway{cache: redis.NewCache(client, opts)}
}

func (gateway *RedisWatermarkGateway) LastSnapshot(ctx context.Context) (string, error) {
	var fingerprint string
	found, err := gateway.cache.Get(ctx, watermarkKey, &fingerprint)
	if err != nil {
		return "", fmt.Errorf("reading snapshot watermark: %w", err)
	}
	if !found {
		return "", nil
	}
	return fingerprint, nil
}

func (gateway *RedisWatermarkGateway) SaveSnapshot(ctx context.Context, fingerprint string) error {
	if err := gateway.cache.SetWithTTL(ctx, watermarkKey, fingerprint, 0); err != nil {
		return fmt.Errorf("saving snapshot watermark: %w", err)
	}
	return nil
}
