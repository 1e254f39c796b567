package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// backendContract は全 Backend 実装が満たすべき振る舞いを検証する
func backendContract(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, err := b.Get(ctx, "missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("%s: expected ErrKeyNotFound for missing key, got %v", b.Name(), err)
	}
	if err := b.Set(ctx, "posts", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("%s: Set: %v", b.Name(), err)
	}
	if err := b.Set(ctx, "posts", []byte(`[{"id":2}]`)); err != nil {
		t.Fatalf("%s: Set overwrite: %v", b.Name(), err)
	}
	got, err := b.Get(ctx, "posts")
	if err != nil {
		t.Fatalf("%s: Get: %v", b.Name(), err)
	}
	if string(got) != `[{"id":2}]` {
		t.Errorf("%s: expected overwritten value, got %s", b.Name(), got)
	}
	if err := b.Ping(ctx); err != nil {
		t.Errorf("%s: Ping: %v", b.Name(), err)
	}
}

func TestMemoryBackend(t *testing.T) {
	backendContract(t, NewMemoryBackend())
}

func TestFileBackend(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(dir)
	backendContract(t, b)

	data, err := os.ReadFile(filepath.Join(dir, "posts.json"))
	if err != nil {
		t.Fatalf("expected posts.json on disk: %v", err)
	}
	if string(data) != `[{"id":2}]` {
		t.Errorf("unexpected file content %s", data)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestFileBackend_RejectsPathKeys(t *testing.T) {
	b := NewFileBackend(t.TempDir())
	if err := b.Set(context.Background(), "../escape", []byte("[]")); err == nil {
		t.Error("expected error for key containing a path")
	}
}

func TestFileBackend_PingReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(dir, 0o755)

	if err := NewFileBackend(dir).Ping(context.Background()); err == nil {
		t.Error("expected Ping to fail on a read-only directory")
	}
}

func TestSQLBackend_SQLite(t *testing.T) {
	b, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer b.Close()
	backendContract(t, b)
}

func TestSQLBackend_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv", "store.db")
	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := b.Set(context.Background(), "timeline", []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	b.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(context.Background(), "timeline")
	if err != nil || string(got) != "[]" {
		t.Errorf("expected persisted value, got %q (%v)", got, err)
	}
}

func TestLibSQLDSN_EscapesToken(t *testing.T) {
	dsn, err := libSQLDSN("libsql://db.example.turso.io", "a+b/c=&x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dsn != "libsql://db.example.turso.io?authToken=a%2Bb%2Fc%3D%26x" {
		t.Errorf("unexpected dsn %q", dsn)
	}

	dsn, _ = libSQLDSN("libsql://db.example.turso.io", "")
	if dsn != "libsql://db.example.turso.io" {
		t.Errorf("expected url unchanged without token, got %q", dsn)
	}
}

func TestRedisBackend_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	b, err := NewRedisBackend(url, "portfolio-test:")
	if err != nil {
		t.Fatalf("NewRedisBackend: %v", err)
	}
	defer b.Close()
	backendContract(t, b)
}

func TestPgBackend_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := OpenPool(ctx, url)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer pool.Close()

	b := NewPgBackend(pool)
	if err := b.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	_, _ = pool.Exec(ctx, `DELETE FROM kv_store WHERE key IN ('posts', 'missing')`)
	backendContract(t, b)
}

func TestStore_FileOnly_EndToEnd(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := NewStore(nil, NewFileBackend(dir), 0)
	c := NewCollection(s, testSchema())

	created, err := c.Create(ctx, testItem{Title: "on disk"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// a fresh store over the same directory sees the record
	s2, _ := NewStore(nil, NewFileBackend(dir), 0)
	got, err := NewCollection(s2, testSchema()).Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "on disk" {
		t.Errorf("expected title from disk, got %q", got.Title)
	}
}
