package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

// RedisStorage keeps session keys in Redis with a sliding TTL.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedis(opts RedisOptions) *RedisStorage {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisWithClient(client, opts.TTL, opts.Prefix)
}

func NewRedisWithClient(client *redis.Client, ttl time.Duration, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "jobhive:"
	}
	return &RedisStorage{client: client, ttl: ttl, prefix: prefix}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if r.ttl > 0 {
		r.client.Expire(ctx, r.prefix+key, r.ttl)
	}
	return val, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.prefix+key, value, r.ttl).Err()
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}
