package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document as a Redis string under
// "graphedit:doc:<name>".
type RedisStore struct {
	client *redis.Client
	prefix string
	owned  bool
}

// NewRedisStore connects to the Redis server at url
// (redis://[user:pass@]host:port/db).
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := RetryWithBackoff(ctx, func() error { return redisErr(client.Ping(ctx).Err()) }); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client, prefix: "graphedit:doc:", owned: true}, nil
}

// NewRedisStoreWithClient wraps an existing client. Close leaves the client
// open.
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Load reads the document called name.
func (s *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.prefix+name).Bytes()
		return redisErr(err)
	})
	if errors.Is(err, redis.Nil) {
		return nil, notFound(name)
	}
	return data, err
}

// Save stores the document without expiry.
func (s *RedisStore) Save(ctx context.Context, name string, data []byte) error {
	return RetryWithBackoff(ctx, func() error {
		return redisErr(s.client.Set(ctx, s.prefix+name, data, 0).Err())
	})
}

// Delete removes the document called name.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	var n int64
	err := RetryWithBackoff(ctx, func() error {
		var err error
		n, err = s.client.Del(ctx, s.prefix+name).Result()
		return redisErr(err)
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(name)
	}
	return nil
}

// List scans the key space for documents.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Close releases the client if the store opened it.
func (s *RedisStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

// redisErr marks network failures as retryable.
func redisErr(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Retryable(err)
	}
	return err
}

var _ Store = (*RedisStore)(nil)
