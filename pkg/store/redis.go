package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter implements a fixed-window rate limit with INCR + EXPIRE.
// The first hit in a window creates the key; once the counter exceeds the
// limit, further requests in that window are rejected.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisLimiter connects to redis and verifies the connection.
func NewRedisLimiter(ctx context.Context, url string, perMinute int) (*RedisLimiter, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisLimiter{
		client: client,
		limit:  int64(perMinute),
		window: time.Minute,
	}, nil
}

// Allow implements RateLimiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "phishguard:ratelimit:" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	// Only the hit that creates the counter arms the TTL. Re-arming on
	// every hit would keep extending the window for a steady sender and
	// the counter would never reset.
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return count <= l.limit, nil
}

// Close releases the redis connection.
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

// Counters tracks running classification tallies in a redis hash so
// multiple instances share one view.
type Counters struct {
	client *redis.Client
}

// NewCounters wraps an existing limiter's connection settings.
func NewCounters(client *redis.Client) *Counters {
	return &Counters{client: client}
}

// Client exposes the underlying connection for reuse.
func (l *RedisLimiter) Client() *redis.Client { return l.client }

// Record bumps the tally for one classification outcome.
func (c *Counters) Record(ctx context.Context, classification string) error {
	return c.client.HIncrBy(ctx, "phishguard:counters", classification, 1).Err()
}

// Snapshot returns all tallies.
func (c *Counters) Snapshot(ctx context.Context) (map[string]int64, error) {
	raw, err := c.client.HGetAll(ctx, "phishguard:counters").Result()
	if err != nil {
		return nil, fmt.Errorf("read counters: %w", err)
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[k] = n
	}
	return out, nil
}
