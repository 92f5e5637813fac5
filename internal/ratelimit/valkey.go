// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces limiter keys in Valkey.
const keyPrefix = "ratelimit:"

// slidingWindow trims events older than the window, and records a new
// one only while the set holds fewer than limit members. Running it as a
// script keeps check-and-add atomic across instances.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
if redis.call('ZCARD', key) >= limit then
  return 0
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return 1
`)

// Valkey is a sliding-window limiter stored in a Valkey sorted set per key.
type Valkey struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewValkey creates a limiter that allows limit events per window.
func NewValkey(client *redis.Client, limit int, window time.Duration) *Valkey {
	return &Valkey{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow implements Limiter.
func (v *Valkey) Allow(ctx context.Context, key string) (bool, error) {
	now := v.now().UnixMilli()
	res, err := slidingWindow.Run(ctx, v.client, []string{keyPrefix + key},
		now, v.window.Milliseconds(), v.limit, fmt.Sprintf("%d-%s", now, uuid.NewString()),
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return res == 1, nil
}

// Release implements Limiter. Members are scored by time, so the one
// with the highest score is the newest event.
func (v *Valkey) Release(ctx context.Context, key string) error {
	if err := v.client.ZPopMax(ctx, keyPrefix+key, 1).Err(); err != nil {
		return fmt.Errorf("rate limit release %s: %w", key, err)
	}
	return nil
}
