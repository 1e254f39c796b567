package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PgBackend は Backend の PostgreSQL 実装
type PgBackend struct {
	pool *pgxpool.Pool
}

// NewPgBackend は PgBackend を生成する
func NewPgBackend(pool *pgxpool.Pool) *PgBackend {
	return &PgBackend{pool: pool}
}

func (b *PgBackend) Name() string { return "postgres" }

// EnsureSchema は kv_store テーブルがなければ作成する
func (b *PgBackend) EnsureSchema(ctx context.Context) error {
	if _, err := b.pool.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("postgres backend: schema: %w", err)
	}
	return nil
}

// Get は key の値を取得する
func (b *PgBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := b.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres backend: get %s: %w", key, err)
	}
	return data, nil
}

// Set は key の値を upsert する
func (b *PgBackend) Set(ctx context.Context, key string, data []byte) error {
	_, err := b.pool.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("postgres backend: set %s: %w", key, err)
	}
	return nil
}

func (b *PgBackend) Ping(ctx context.Context) error {
	return b.pool.Ping(ctx)
}
