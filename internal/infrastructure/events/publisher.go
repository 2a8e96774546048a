package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher fans change events out to subscribed clients.
type Publisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}

type redisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher publishes change events on a Redis pub/sub channel.
// Delivery is best-effort; subscribers resolve events through
// AffectedCollections and re-fetch, so a missed event only delays a refresh.
func NewRedisPublisher(client *redis.Client, channel string) Publisher {
	return &redisPublisher{client: client, channel: channel}
}

func (p *redisPublisher) Publish(ctx context.Context, event ChangeEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}
	return nil
}
