package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:session:"

// RedisStore keeps tokens in Redis, for deployments where the client
// kit runs server-side (e.g. a BFF holding sessions for web clients).
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore parses the URL and verifies the connection before
// returning a usable store.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, keyPrefix+key, value, 0).Err()
}

func (r *RedisStore) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
