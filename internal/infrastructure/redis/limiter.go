package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "moneytracker:ratelimit:"

// Limiter is a fixed window request counter shared by every API instance
// pointed at the same Redis.
type Limiter struct {
	client   goredis.Cmdable
	requests int
	window   time.Duration
}

func NewLimiter(client goredis.Cmdable, requests int, window time.Duration) *Limiter {
	return &Limiter{
		client:   client,
		requests: requests,
		window:   window,
	}
}

// Allow counts one request for key in the current window. INCR and the
// expiry run in one MULTI/EXEC so a counter can never outlive its window.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := time.Now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("%s%s:%d", keyPrefix, key, windowStart)

	var incr *goredis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("count request: %w", err)
	}

	return incr.Val() <= int64(l.requests), nil
}
