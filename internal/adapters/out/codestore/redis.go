package codestore

import (
	"context"
	"errors"
	"time"

	"freelance/internal/core/domain/model/verification"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "verification:"

// RedisStore keeps codes as plain Redis keys. Expiry is native, so
// SweepExpired has nothing to do.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, key string, code verification.Code, ttl time.Duration) error {
	return s.client.Set(ctx, redisKeyPrefix+key, code.String(), ttl).Err()
}

func (s *RedisStore) GetIfNotExpired(ctx context.Context, key string) (verification.Code, bool, error) {
	v, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return verification.Code(v), true, nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}

func (s *RedisStore) SweepExpired(context.Context) (int, error) {
	return 0, nil
}
