package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

const sqlSchema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLBackend は database/sql 経由で kv_store テーブルにコレクションを保存する。
// ローカルの SQLite（modernc ドライバ）と Turso/libSQL の両方に使う。
type SQLBackend struct {
	db   *sql.DB
	name string
}

// OpenSQLite は path の SQLite データベースを開き（なければ作成し）、スキーマを用意する。
// ":memory:" を渡すとインメモリ DB になる（テスト用）。
func OpenSQLite(path string) (*SQLBackend, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// 単一接続にして "database is locked" を避け、:memory: を 1 つの DB に保つ
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	b := &SQLBackend{db: db, name: "sqlite"}
	if err := b.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

// OpenLibSQL は Turso/libSQL データベースを開く。接続確認はしないため、
// 到達できない場合も起動は失敗せずファイル層で動作する。
func OpenLibSQL(dbURL, authToken string) (*SQLBackend, error) {
	dsn, err := libSQLDSN(dbURL, authToken)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening libsql: %w", err)
	}
	return &SQLBackend{db: db, name: "libsql"}, nil
}

// libSQLDSN は認証トークンをクエリ文字列としてエスケープして付与する
func libSQLDSN(dbURL, authToken string) (string, error) {
	if authToken == "" {
		return dbURL, nil
	}
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("parsing libsql url: %w", err)
	}
	q := u.Query()
	q.Set("authToken", authToken)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (b *SQLBackend) Name() string { return b.name }

// EnsureSchema は kv_store テーブルがなければ作成する
func (b *SQLBackend) EnsureSchema(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, sqlSchema); err != nil {
		return fmt.Errorf("%s backend: schema: %w", b.name, err)
	}
	return nil
}

func (b *SQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s backend: get %s: %w", b.name, key, err)
	}
	return data, nil
}

func (b *SQLBackend) Set(ctx context.Context, key string, data []byte) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%s backend: set %s: %w", b.name, key, err)
	}
	return nil
}

func (b *SQLBackend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

// Close はデータベース接続を閉じる
func (b *SQLBackend) Close() error {
	return b.db.Close()
}
