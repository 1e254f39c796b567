package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

var validKey = regexp.MustCompile(`^[a-z0-9_-]+$`)

// FileBackend は 1 コレクションを 1 つの JSON ファイル (<dir>/<key>.json) として保存する Backend 実装
type FileBackend struct {
	dir string
}

// NewFileBackend は FileBackend を生成する
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

func (b *FileBackend) Name() string { return "file" }

// Path は key に対応するファイルパスを返す
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	if !validKey.MatchString(key) {
		return nil, fmt.Errorf("file backend: invalid key %q", key)
	}
	data, err := os.ReadFile(b.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("file backend: read: %w", err)
	}
	return data, nil
}

// Set はファイル全体を一時ファイル経由で書き換える（追記・部分更新はしない）
func (b *FileBackend) Set(_ context.Context, key string, data []byte) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("file backend: invalid key %q", key)
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("file backend: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("file backend: create: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("file backend: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file backend: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.Path(key)); err != nil {
		return fmt.Errorf("file backend: rename: %w", err)
	}
	return nil
}

// Ping はディレクトリが書き込み可能か確認する
func (b *FileBackend) Ping(_ context.Context) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("file backend: mkdir: %w", err)
	}
	f, err := os.CreateTemp(b.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("file backend: not writable: %w", err)
	}
	f.Close()
	return os.Remove(f.Name())
}
