package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrScript performs the bounded increment atomically on the Redis side:
// a counter at the limit is returned unchanged with a rejection marker, so
// concurrent clients can neither undercount nor push past the limit.
// KEYS[1] = counter key, ARGV[1] = limit, ARGV[2] = ttl in milliseconds.
var incrScript = redis.NewScript(`
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
if count >= tonumber(ARGV[1]) then
    return {count, 0}
end
count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return {count, 1}
`)

// RedisStore implements Store on a shared Redis instance, giving every
// process the same view of per-window counters. Counters expire via TTL;
// no cleanup pass is needed.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a counter store using the given Redis client.
// Keys are namespaced under "ratelimit:".
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:"}
}

// Incr implements Store.
func (rs *RedisStore) Incr(ctx context.Context, key string, ttl time.Duration, limit int) (int64, bool, error) {
	res, err := incrScript.Run(ctx, rs.client, []string{rs.prefix + key}, limit, ttl.Milliseconds()).Slice()
	if err != nil {
		return 0, false, errors.Join(ErrStoreUnavailable, err)
	}
	if len(res) != 2 {
		return 0, false, ErrStoreUnavailable
	}

	count, _ := res[0].(int64)
	applied, _ := res[1].(int64)
	return count, applied == 1, nil
}

// Get implements Store.
func (rs *RedisStore) Get(ctx context.Context, key string) (int64, error) {
	count, err := rs.client.Get(ctx, rs.prefix+key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return count, nil
}

// Reset implements Store.
func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
