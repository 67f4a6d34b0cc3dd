package repository

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/pkg/cleanup"
)

type RedisKVStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisKVStore(cfg *RedisCfg) *RedisKVStore {
	opts, err := redisOptions(cfg)
	if err != nil {
		log.Fatal("redis config error: " + err.Error())
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = client.Ping(ctx).Err(); err != nil {
		log.Fatal("error while pinging redis: " + err.Error())
	}
	store := &RedisKVStore{
		client: client,
		ttl:    cfg.TTL,
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing redis client",
		F:    store.Close,
	})
	return store
}

func NewRedisKVStoreWithClient(client *redis.Client, ttl time.Duration) *RedisKVStore {
	return &RedisKVStore{
		client: client,
		ttl:    ttl,
	}
}

func redisOptions(cfg *RedisCfg) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis url is empty")
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if parsed.Scheme == "rediss" && opts.TLSConfig == nil {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	return opts, nil
}

func (s *RedisKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorvalues.ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: redis get: %v", errorvalues.ErrStoreUnavailable, err)
	}
	return v, nil
}

func (s *RedisKVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", errorvalues.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisKVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: redis del: %v", errorvalues.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisKVStore) Close() error {
	return s.client.Close()
}
