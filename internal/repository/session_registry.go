package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

// RedisSessionRegistry keeps session:<sid> -> user id with the session's lifetime as TTL.
type RedisSessionRegistry struct {
	rdb *redis.Client
}

func NewRedisSessionRegistry(rdb *redis.Client) *RedisSessionRegistry {
	return &RedisSessionRegistry{rdb: rdb}
}

func (r *RedisSessionRegistry) Register(ctx context.Context, sid string, userID uint, ttl time.Duration) error {
	return r.rdb.Set(ctx, sessionKeyPrefix+sid, userID, ttl).Err()
}

func (r *RedisSessionRegistry) Lookup(ctx context.Context, sid string) (uint, bool, error) {
	val, err := r.rdb.Get(ctx, sessionKeyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return uint(id), true, nil
}

func (r *RedisSessionRegistry) Revoke(ctx context.Context, sid string) error {
	return r.rdb.Del(ctx, sessionKeyPrefix+sid).Err()
}
