package repository

import (
	"context"
	"fmt"

	"github.com/portfolio/backend/internal/config"
)

// OpenRemote は設定に従ってリモート層の Backend を生成する。
// KV_BACKEND=none の場合は nil を返し、ファイル層のみで動作する。
// 戻り値の close は常に呼び出してよい。
func OpenRemote(ctx context.Context, kv config.KVConfig) (Backend, func(), error) {
	noop := func() {}
	switch kv.Backend {
	case config.BackendNone, "":
		return nil, noop, nil
	case config.BackendMemory:
		return NewMemoryBackend(), noop, nil
	case config.BackendRedis:
		b, err := NewRedisBackend(kv.RedisURL, kv.Prefix)
		if err != nil {
			return nil, noop, err
		}
		return b, func() { _ = b.Close() }, nil
	case config.BackendPostgres:
		pool, err := OpenPool(ctx, kv.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres backend: %w", err)
		}
		return NewPgBackend(pool), pool.Close, nil
	case config.BackendSQLite:
		b, err := OpenSQLite(kv.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return b, func() { _ = b.Close() }, nil
	case config.BackendLibSQL:
		b, err := OpenLibSQL(kv.LibSQLURL, kv.LibSQLToken)
		if err != nil {
			return nil, noop, err
		}
		return b, func() { _ = b.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown KV backend %q", kv.Backend)
	}
}

// SchemaEnsurer はテーブルを持つ Backend（postgres / sqlite / libsql）が実装する
type SchemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}
