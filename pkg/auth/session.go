package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
)

// CreateSessionToken は subject と有効期限から署名付きセッショントークンを生成する
// 形式: base64(subject "|" unix秒) "." hex(HMAC-SHA256)
func CreateSessionToken(subject string, expires time.Time, secret []byte) string {
	payload := []byte(subject + "|" + strconv.FormatInt(expires.Unix(), 10))
	return base64.RawURLEncoding.EncodeToString(payload) + "." + sign(payload, secret)
}

// VerifySessionToken はトークンを検証し subject を返す
func VerifySessionToken(token string, secret []byte, now time.Time) (string, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrInvalidToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !hmac.Equal([]byte(sign(payload, secret)), []byte(sig)) {
		return "", ErrInvalidToken
	}

	i := strings.LastIndexByte(string(payload), '|')
	if i < 0 {
		return "", ErrInvalidToken
	}
	exp, err := strconv.ParseInt(string(payload[i+1:]), 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !now.Before(time.Unix(exp, 0)) {
		return "", ErrTokenExpired
	}
	return string(payload[:i]), nil
}

func sign(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

const sessionCookieName = "portfolio_session"
const minSecretLen = 32

// SessionCookieName はセッションクッキー名
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes は文字列からセッション署名用のバイト列を生成する（最低32バイト）
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
