package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage はローカルファイルシステムに画像を保存する Storage 実装。
type LocalStorage struct {
	baseDir   string // ディスク上のルートディレクトリ (例: "./public/images")
	urlPrefix string // HTTP で配信する際の URL プレフィックス (例: "/images")
}

// NewLocalStorage は LocalStorage を生成する。
func NewLocalStorage(baseDir, urlPrefix string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

// Dir returns the directory files are written to.
func (s *LocalStorage) Dir() string { return s.baseDir }

func (s *LocalStorage) Save(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: mkdir: %w", ErrUnavailable, err)
	}

	dest := filepath.Join(s.baseDir, key)
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: create: %w", ErrUnavailable, err)
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("storage: write: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("storage: close: %w", err)
	}

	return s.urlPrefix + "/" + key, nil
}

// Ping はディレクトリを作成し、一時ファイルを書いて書き込み可能かを確認する。
func (s *LocalStorage) Ping(_ context.Context) error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	f, err := os.CreateTemp(s.baseDir, ".probe-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	name := f.Name()
	return errors.Join(f.Close(), os.Remove(name))
}
