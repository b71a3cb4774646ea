package websockets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// DefaultRelayChannel is the Redis channel wager events are relayed on.
const DefaultRelayChannel = "wager-escrow:events"

// RedisRelay publishes messages on a Redis Pub/Sub channel so that every API
// instance can deliver them to its own websocket clients.
type RedisRelay struct {
	rdb     *redis.Client
	channel string
}

// NewRedisRelay creates a relay on channel.
func NewRedisRelay(rdb *redis.Client, channel string) *RedisRelay {
	if channel == "" {
		channel = DefaultRelayChannel
	}
	return &RedisRelay{rdb: rdb, channel: channel}
}

var _ Publisher = (*RedisRelay)(nil)

// Publish sends the message to the relay channel.
func (r *RedisRelay) Publish(ctx context.Context, message Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis: publish %s: %w", r.channel, err)
	}
	return nil
}

// Run subscribes to the relay channel and hands every message to local
// until ctx is cancelled.
func (r *RedisRelay) Run(ctx context.Context, local Publisher) error {
	pubsub := r.rdb.Subscribe(ctx, r.channel)

	// Verify the subscription is established by receiving the confirmation.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("redis: subscribe %s: %w", r.channel, err)
	}
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var m Message
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				slog.Warn("dropping malformed relay message", "channel", r.channel, "error", err)
				continue
			}
			if err := local.Publish(ctx, m); err != nil {
				slog.Error("failed to deliver relayed message", "error", err)
			}
		}
	}
}
