package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisIDPrefix    = "session:id:"
	redisTokenPrefix = "session:token:"
)

// RedisStore implements Store on a shared Redis instance so every process
// sees the same session records. Records carry a TTL slightly past the idle
// lifetime, so storage self-cleans and DeleteExpired has nothing to do.
type RedisStore struct {
	client  redis.UniversalClient
	idleTTL time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, idleTTL time.Duration) *RedisStore {
	if idleTTL <= 0 {
		idleTTL = time.Hour
	}
	return &RedisStore{client: client, idleTTL: idleTTL}
}

// GetByID implements Store.
func (rs *RedisStore) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	return rs.get(ctx, redisIDPrefix+id.String())
}

// GetByToken implements Store.
func (rs *RedisStore) GetByToken(ctx context.Context, token string) (*Session, error) {
	id, err := rs.client.Get(ctx, redisTokenPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rs.get(ctx, redisIDPrefix+id)
}

// Save implements Store. The record and its token index are written in one
// pipeline; a rotated-away token's index is dropped in the same round trip.
func (rs *RedisStore) Save(ctx context.Context, sess *Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	// Keep records a little past idle expiry so the manager can observe
	// and report expiry instead of a bare miss.
	ttl := rs.idleTTL + 5*time.Minute

	pipe := rs.client.TxPipeline()
	pipe.Set(ctx, redisIDPrefix+sess.ID.String(), payload, ttl)
	pipe.Set(ctx, redisTokenPrefix+sess.Token, sess.ID.String(), ttl)
	if prev := sess.PreviousToken(); prev != "" && prev != sess.Token {
		pipe.Del(ctx, redisTokenPrefix+prev)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Delete implements Store.
func (rs *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := rs.get(ctx, redisIDPrefix+id.String())
	if err != nil {
		return err
	}

	pipe := rs.client.TxPipeline()
	pipe.Del(ctx, redisIDPrefix+id.String())
	pipe.Del(ctx, redisTokenPrefix+sess.Token)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteExpired implements Store. Redis TTLs already evict idle sessions.
func (rs *RedisStore) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (rs *RedisStore) get(ctx context.Context, key string) (*Session, error) {
	payload, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
