package storage

import (
	"context"
	"errors"
	"io"
)

// ErrUnavailable は保存先が書き込み不可の場合に返す
var ErrUnavailable = errors.New("storage: unavailable")

// Storage はアップロード画像の保存を抽象化するインターフェース。
type Storage interface {
	// Save はファイルを保存し、公開 URL を返す。
	// key はストレージ内の一意なファイル名 (例: "<uuid>.jpg")。
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Ping は書き込み可能かを確認する。
	Ping(ctx context.Context) error
}
