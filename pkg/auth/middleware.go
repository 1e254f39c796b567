package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const subjectKey contextKey = "subject"

// SubjectFromContext は context から認証済み subject を取得する
func SubjectFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(subjectKey).(string)
	return v, ok
}

// WithSubject は context に subject をセットする
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// TokenFromRequest はセッションクッキー、なければ Authorization: Bearer ヘッダーからトークンを取り出す
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName()); err == nil && c.Value != "" {
		return c.Value
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireAuth は認証必須ミドルウェア。セッションを検証し、subject を context にセットする
func RequireAuth(sessionSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				unauthorized(w, "unauthorized")
				return
			}

			subject, err := VerifySessionToken(token, sessionSecret, time.Now())
			if errors.Is(err, ErrTokenExpired) {
				unauthorized(w, "session_expired")
				return
			}
			if err != nil {
				unauthorized(w, "invalid_session")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}

func unauthorized(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// DevSubject は開発用のダミー subject（AUTH_REQUIRED=false 時に使用）
const DevSubject = "dev-admin"

// DevAuth は開発用ミドルウェア。ダミー subject を context にセットする
func DevAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), DevSubject)))
	})
}
