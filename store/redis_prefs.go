package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPreferences persists preferences as plain Redis string keys under a
// common prefix.
type RedisPreferences struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisPreferences wraps an existing client. Keys are stored as prefix+key.
func NewRedisPreferences(client redis.UniversalClient, prefix string) *RedisPreferences {
	return &RedisPreferences{client: client, prefix: prefix}
}

// DialRedisPreferences connects to addr and verifies the connection.
func DialRedisPreferences(ctx context.Context, addr, password string, db int, prefix string) (*RedisPreferences, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return NewRedisPreferences(client, prefix), nil
}

func (r *RedisPreferences) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisPreferences) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

func (r *RedisPreferences) Close() error {
	return r.client.Close()
}
