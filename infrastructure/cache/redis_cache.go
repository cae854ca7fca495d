package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"tubelens/domain/repository"
	"tubelens/infrastructure/logger"
)

// NewCache connects to Redis. A failed ping is reported but the client is
// still returned; callers decide whether to degrade or fail.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis ping failed")
		return client, err
	}
	return client, nil
}

// RedisKV implements the key-value store over Redis.
type RedisKV struct{ client *redis.Client }

func NewRedisKV(client *redis.Client) repository.IKVStore {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", &repository.ErrKeyNotFound{Key: key}
	}
	return val, err
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Keys scans rather than using KEYS so large keyspaces don't block Redis.
func (r *RedisKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}
