package service

import (
	"context"
	"crypto/subtle"
	"log/slog"
)

// AuthServiceImpl は AuthService の実装（単一の管理者アカウント）
type AuthServiceImpl struct {
	username string
	password string
}

// NewAuthService は AuthServiceImpl を生成する。どちらかが空の場合ログインは常に失敗する
func NewAuthService(username, password string) AuthService {
	return &AuthServiceImpl{username: username, password: password}
}

func (s *AuthServiceImpl) Enabled() bool {
	return s.username != "" && s.password != ""
}

// Login は管理者資格情報を定数時間で比較する
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	if !s.Enabled() {
		slog.Warn("admin login attempted but no credentials are configured")
		return "", ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		slog.Info("admin login rejected", "username", username)
		return "", ErrInvalidCredentials
	}
	return AdminSubject, nil
}
