package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/auth"
)

// AuthConfig はセッション発行の設定
type AuthConfig struct {
	SessionSecret []byte
	SessionTTL    time.Duration
	// SecureCookie は Secure 属性付きでクッキーを発行するか（HTTPS 配信時）
	SecureCookie bool
}

// AuthHandler は管理者のログイン・ログアウトを処理する
type AuthHandler struct {
	authService service.AuthService
	cfg         AuthConfig
	now         func() time.Time
}

// NewAuthHandler は AuthHandler を生成する
func NewAuthHandler(authService service.AuthService, cfg AuthConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg, now: time.Now}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login は POST /api/auth/login を処理する。成功時はセッションクッキーを発行しトークンも返す
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "credentials_required")
		return
	}

	subject, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if err != nil {
		writeStoreError(w, r, "login", err)
		return
	}

	expires := h.now().Add(h.cfg.SessionTTL)
	token := auth.CreateSessionToken(subject, expires, h.cfg.SessionSecret)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.SecureCookie,
	})
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires.UTC()})
}

// Logout は POST /api/auth/logout を処理する
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.SecureCookie,
	})
	writeOK(w)
}

// Me は GET /api/me を処理する（認証必須ルートの後ろで使う）
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"subject": subject})
}
