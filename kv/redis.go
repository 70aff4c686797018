package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis server, for users who keep their data
// on a small home server instead of the local disk.
type Redis struct {
	client *redis.Client
}

// opTimeout bounds every Redis round trip; the tracker is fail-fast, a slow
// store must surface as an error, not a hang.
const opTimeout = 5 * time.Second

// OpenRedis connects to the Redis server at addr ("host:port" or a redis://
// URL) and verifies the connection.
func OpenRedis(addr string) (*Redis, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		// Fallback to a plain host:port address.
		opt = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cannot connect to redis at %q: %w", addr, err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cannot read key %q: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("cannot write key %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cannot delete key %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error { return r.client.Close() }
