package cache

import (
	"context"

	"redfin-etl/internal/domain/model"
	"redfin-etl/pkg/redis"
)

type HealthCacheGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}

type RedisHealthCacheGateway struct {
	checker *redis.HealthChecker
}

var _ HealthCacheGateway = (*RedisHealthCacheGateway)(nil)

func NewRedisHealthCacheGateway(client *redis.Client) *RedisHealthCacheGateway {
	return &RedisHealthCacheGateway{checker: redis.NewHealthChecker(client)}
}

func (gateway *RedisHealthCacheGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	check := gateway.checker.HealthCheck(ctx)

	status := model.StatusDown
	if check.Status == redis.StatusUp {
		status = model.StatusUp
	}

	details := check.Details
	if details == nil {
		details = make(map[string]string)
	}
	for name, held := range check.LockStatus {
		if held {
			details["lock_"+name] = "held"
		} else {
			details["lock_"+name] = "free"
		}
	}

	return model.ComponentHealthStatus{
		Status:  status,
		Details: details,
	}
}
