package internal

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultRedisTimeout = 3 * time.Second

// RedisKV is a KeyValueStore over a Redis server. Every call is bounded
// by the configured timeout so the store keeps its synchronous contract.
type RedisKV struct {
	cli     *redis.Client
	timeout time.Duration
}

// OpenRedisKV connects to addr and verifies the connection with PING
func OpenRedisKV(addr, password string, db int, timeout time.Duration) (*RedisKV, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}
	cli := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	r := &RedisKV{cli: cli, timeout: timeout}

	ctx, cancel := r.ctx()
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, &StorageError{Backend: DriverRedis, Op: "open", Err: err}
	}
	return r, nil
}

func (r *RedisKV) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

// Get returns the value stored under key
func (r *RedisKV) Get(key string) (string, bool, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	val, err := r.cli.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Backend: DriverRedis, Op: "get", Err: err}
	}
	return val, true, nil
}

// Set overwrites the value stored under key. Keys never expire.
func (r *RedisKV) Set(key, value string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	if err := r.cli.Set(ctx, key, value, 0).Err(); err != nil {
		return &StorageError{Backend: DriverRedis, Op: "set", Err: err}
	}
	return nil
}

// Delete removes key
func (r *RedisKV) Delete(key string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	if err := r.cli.Del(ctx, key).Err(); err != nil {
		return &StorageError{Backend: DriverRedis, Op: "delete", Err: err}
	}
	return nil
}

// Keys lists every key with the given prefix
func (r *RedisKV) Keys(prefix string) ([]string, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var keys []string
	iter := r.cli.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, &StorageError{Backend: DriverRedis, Op: "scan", Err: err}
	}
	return keys, nil
}

// Close closes the client connection pool
func (r *RedisKV) Close() error {
	return r.cli.Close()
}

// Name identifies the backend in logs and errors
func (r *RedisKV) Name() string {
	return DriverRedis
}
