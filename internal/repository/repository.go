package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenPool は接続確認をせずにプールを生成する。
// サーバー起動時に DB が落ちていてもファイル層で動作を続けるために使う。
func OpenPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}
