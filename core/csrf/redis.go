package csrf

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session's token set in a Redis sorted set scored by
// issue time, so bound eviction and expiry purges are range operations.
// Keys carry a TTL so abandoned sessions clean themselves up.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	keyTTL time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisKeyPrefix overrides the default "csrf:" key prefix.
func WithRedisKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithRedisKeyTTL overrides how long an untouched token set survives.
func WithRedisKeyTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.keyTTL = ttl
		}
	}
}

// NewRedisStore creates a Redis-backed token store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "csrf:",
		keyTTL: time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(sessionID uuid.UUID) string {
	return s.prefix + sessionID.String()
}

// Add records the token with its issue time as score and trims the set to
// maxTokens, dropping the lowest-scored (oldest) members.
func (s *RedisStore) Add(ctx context.Context, sessionID uuid.UUID, token string, issuedAt time.Time, maxTokens int) error {
	key := s.key(sessionID)

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(issuedAt.UnixMilli()), Member: token})
	if maxTokens > 0 {
		pipe.ZRemRangeByRank(ctx, key, 0, int64(-maxTokens-1))
	}
	pipe.Expire(ctx, key, s.keyTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Consume removes the token atomically; ZRem's removed-count arbitrates
// concurrent consumers, so only one caller sees found=true.
func (s *RedisStore) Consume(ctx context.Context, sessionID uuid.UUID, token string) (time.Time, bool, error) {
	key := s.key(sessionID)

	score, err := s.client.ZScore(ctx, key, token).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	removed, err := s.client.ZRem(ctx, key, token).Result()
	if err != nil {
		return time.Time{}, false, err
	}
	if removed == 0 {
		// Lost the race to another consumer.
		return time.Time{}, false, nil
	}

	return time.UnixMilli(int64(score)), true, nil
}

// Purge drops entries issued before cutoff. The exclusive upper bound keeps
// an entry issued exactly at the cutoff, matching the memory store.
func (s *RedisStore) Purge(ctx context.Context, sessionID uuid.UUID, cutoff time.Time) error {
	max := "(" + strconv.FormatInt(cutoff.UnixMilli(), 10)
	return s.client.ZRemRangeByScore(ctx, s.key(sessionID), "-inf", max).Err()
}

// DeleteAll removes the session's token set.
func (s *RedisStore) DeleteAll(ctx context.Context, sessionID uuid.UUID) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}
