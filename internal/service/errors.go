package service

import "errors"

var (
	// ErrSlugTaken は別の記事が同じ slug を使っている場合に返す
	ErrSlugTaken = errors.New("slug already taken")
	// ErrInvalidCredentials は管理者ログインに失敗した場合に返す
	ErrInvalidCredentials = errors.New("invalid credentials")
)
