package events

import (
	"context"
	"fmt"

	"redfin-etl/internal/domain/entity"
	"redfin-etl/pkg/redis"
)

type RedisRunEventPublisher struct {
	publisher *redis.Publisher
	channel   string
}

var _ Publisher = (*RedisRunEventPublisher)(nil)

// NewRedisRunEventPublisher publishes run events on the given channel under
// the application namespace.
func NewRedisRunEventPublisher(client *redis.Client, namespace, channel string) *RedisRunEventPublisher {
	return &RedisRunEventPublisher{
		publisher: redis.NewPublisher(client, namespace),
		channel:   channel,
	}
}

func (p *RedisRunEventPublisher) PublishRunEvent(ctx context.Context, run *entity.PipelineRun) error {
	if err := p.publisher.PublishJSON(ctx, p.channel, run); err != nil {
		return fmt.Errorf("publishing run event for %s: %w", run.ID, err)
	}
	return nil
}
