package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"
)

const pageViewsKey = "portfolio:page_views"

// ViewCounter records and reports total site page views.
type ViewCounter interface {
	Record(ctx context.Context) (int64, error)
	Total(ctx context.Context) (int64, error)
}

// NewRedisClient connects to the redis server at url and pings it.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, errors.New("redis URL is required")
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

// RedisViewCounter keeps the page view total in a single redis counter.
type RedisViewCounter struct {
	client *redis.Client
	key    string
}

func NewRedisViewCounter(client *redis.Client) *RedisViewCounter {
	return &RedisViewCounter{client: client, key: pageViewsKey}
}

func (c *RedisViewCounter) Record(ctx context.Context) (int64, error) {
	total, err := c.client.Incr(ctx, c.key).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing page views: %w", err)
	}
	return total, nil
}

func (c *RedisViewCounter) Total(ctx context.Context) (int64, error) {
	total, err := c.client.Get(ctx, c.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading page views: %w", err)
	}
	return total, nil
}

// PlaceholderViewCounter stands in when no redis is configured. It tracks
// nothing and reports a random total in [5000, 15000).
type PlaceholderViewCounter struct{}

func (PlaceholderViewCounter) Record(ctx context.Context) (int64, error) {
	return PlaceholderViewCounter{}.Total(ctx)
}

func (PlaceholderViewCounter) Total(context.Context) (int64, error) {
	return 5000 + rand.Int64N(10000), nil
}
