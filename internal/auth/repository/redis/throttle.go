package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var releaseScript = goredis.NewScript(`
if tonumber(redis.call("GET", KEYS[1]) or "0") > 0 then
	return redis.call("DECR", KEYS[1])
end
return 0
`)

// ThrottleStore keeps fixed-window login counters in Redis. The window opens
// on the first INCR of a key and closes when the key expires.
type ThrottleStore struct {
	client goredis.UniversalClient
}

func NewThrottleStore(client goredis.UniversalClient) *ThrottleStore {
	return &ThrottleStore{client: client}
}

// NewClient parses a redis:// URL and pings the server.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Increment sends INCR and EXPIRE NX in one MULTI/EXEC, so every counter
// carries a TTL even when it was created by an earlier failed call.
func (s *ThrottleStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	return incr.Val(), nil
}

// Release gives back one attempt in the current window. A missing or
// exhausted key is left alone.
func (s *ThrottleStore) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{key}).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}

func (s *ThrottleStore) Count(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Get(ctx, key).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	return count, nil
}

func (s *ThrottleStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}
