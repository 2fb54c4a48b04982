package redis

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher publishes messages to Redis channels, optionally under a namespace.
type Publisher struct {
	client    *Client
	namespace string
}

// NewPublisher creates a publisher. An empty namespace publishes to channels as given.
func NewPublisher(client *Client, namespace string) *Publisher {
	return &Publisher{
		client:    client,
		namespace: namespace,
	}
}

// buildChannel constructs the full channel name using Namespace::channel format
func (p *Publisher) buildChannel(channel string) string {
	if p.namespace != "" {
		return p.namespace + "::" + channel
	}
	return channel
}

// Publish sends a string message to the given channel
func (p *Publisher) Publish(ctx context.Context, channel string, message string) error {
	if err := p.client.Publish(ctx, p.buildChannel(channel), message); err != nil {
		return fmt.Errorf("failed to publish to channel %s: %w", channel, err)
	}

	return nil
}

// PublishJSON marshals the payload as JSON and sends it to the given channel
func (p *Publisher) PublishJSON(ctx context.Context, channel string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for channel %s: %w", channel, err)
	}

	return p.Publish(ctx, channel, string(data))
}
