package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucket refills capacity tokens evenly over one window. State lives in
// a hash per key and expires once the bucket would be full again.
var tokenBucket = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_ms = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + (intervals * interval_ms)
	end

	local allowed = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('PEXPIRE', key, ttl_ms)

	return allowed
`)

// RedisLimiter shares one token bucket per key across all API instances
type RedisLimiter struct {
	client   *redis.Client
	prefix   string
	capacity int
	window   time.Duration
}

func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	if limit < 1 {
		limit = 1
	}
	return &RedisLimiter{
		client:   client,
		prefix:   prefix,
		capacity: limit,
		window:   window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	interval := refillInterval(l.capacity, l.window)

	allowed, err := tokenBucket.Run(ctx, l.client, []string{l.prefix + ":" + key},
		time.Now().UnixMilli(),
		l.capacity,
		interval,
		l.window.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to run rate limit script: %w", err)
	}

	return allowed == 1, nil
}

// refillInterval is the milliseconds between token refills, never below 1
func refillInterval(capacity int, window time.Duration) int64 {
	if capacity < 1 {
		capacity = 1
	}
	interval := window.Milliseconds() / int64(capacity)
	if interval < 1 {
		interval = 1
	}
	return interval
}
