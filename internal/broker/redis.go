// Package broker provides the shared Redis connection used for reminder
// delivery and the optional task queue.
package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStreamMaxLen caps published streams so an unconsumed stream cannot grow without bound.
const DefaultStreamMaxLen = 10000

// Broker provides Redis access methods.
type Broker struct {
	client *redis.Client
}

// New creates a new Broker with a Redis client.
func New(ctx context.Context, redisURL string) (*Broker, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Broker{client: client}, nil
}

// Ping checks Redis connectivity.
func (b *Broker) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (b *Broker) Close() error {
	return b.client.Close()
}

// Client returns the underlying Redis client. The reminder queue borrows it.
func (b *Broker) Client() *redis.Client {
	return b.client
}

// Publish appends one entry to stream, trimming it to roughly DefaultStreamMaxLen.
// It returns the entry ID assigned by Redis.
func (b *Broker) Publish(ctx context.Context, stream string, values map[string]any) (string, error) {
	id, err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: DefaultStreamMaxLen,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to publish to %s: %w", stream, err)
	}
	return id, nil
}
