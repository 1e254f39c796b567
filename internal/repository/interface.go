package repository

import "context"

// Backend は 1 キーに 1 コレクションを保持するキーバリューストアのインターフェース
type Backend interface {
	// Name はログとヘルスチェックに使う識別名を返す
	Name() string
	// Get は key の値を返す。未保存の場合は ErrKeyNotFound を返す
	Get(ctx context.Context, key string) ([]byte, error)
	// Set は key の値を丸ごと置き換える
	Set(ctx context.Context, key string, data []byte) error
	// Ping は接続の生存確認を行う
	Ping(ctx context.Context) error
}
