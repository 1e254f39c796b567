package service

import "context"

// AdminSubject is the session subject issued to the site administrator.
const AdminSubject = "admin"

// AuthService は管理者認証のインターフェース
type AuthService interface {
	// Login は資格情報を検証し、成功時にセッションの subject を返す
	Login(ctx context.Context, username, password string) (string, error)
	// Enabled は管理者資格情報が設定されているかを返す
	Enabled() bool
}
