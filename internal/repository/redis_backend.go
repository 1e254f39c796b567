package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend は Redis を使った Backend 実装（各コレクションを 1 つの文字列キーに保存する）
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend は redis:// 形式の URL から RedisBackend を生成する。
// 接続は遅延され、到達不能でもエラーにはならない。
func NewRedisBackend(url, prefix string) (*RedisBackend, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis backend: parse url: %w", err)
	}
	return &RedisBackend{client: redis.NewClient(opt), prefix: prefix}, nil
}

func (b *RedisBackend) Name() string { return "redis" }

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis backend: get %s: %w", key, err)
	}
	return v, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, b.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis backend: set %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close は接続プールを閉じる
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
