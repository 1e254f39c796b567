package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/storage"
	"github.com/portfolio/backend/pkg/auth"
)

// Deps はルーターが必要とする依存関係
type Deps struct {
	Store       *repository.Store
	FrontendURL string

	Projects service.ProjectService
	Posts    service.PostService
	Comments service.CommentService
	Timeline service.TimelineService
	Prompts  service.PromptService
	Stats    service.StatsService
	Contact  service.ContactService
	Auth     service.AuthService

	Uploads         storage.Storage
	UploadDir       string // 空の場合 /images は配信しない
	UploadURLPrefix string

	AuthConfig         AuthConfig
	AuthRequired       bool
	RateLimitPerMinute int
}

// NewRouter はすべての API ルートとミドルウェアを組み立てる
func NewRouter(d Deps) http.Handler {
	h := New(d.Store, d.FrontendURL)
	projectHandler := NewProjectHandler(d.Projects)
	postHandler := NewPostHandler(d.Posts)
	commentHandler := NewCommentHandler(d.Comments)
	timelineHandler := NewTimelineHandler(d.Timeline)
	promptHandler := NewPromptHandler(d.Prompts)
	statsHandler := NewStatsHandler(d.Stats)
	contactHandler := NewContactHandler(d.Contact)
	uploadHandler := NewUploadHandler(d.Uploads)
	authHandler := NewAuthHandler(d.Auth, d.AuthConfig)

	// 管理者のみ
	wrapAuth := func(next http.HandlerFunc) http.Handler {
		if d.AuthRequired {
			return auth.RequireAuth(d.AuthConfig.SessionSecret)(next)
		}
		return auth.DevAuth(next)
	}
	// 認証不要の書き込み
	limiter := NewRateLimiter(d.RateLimitPerMinute)
	limit := func(next http.HandlerFunc) http.Handler {
		return limiter.Middleware(next)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	mux.Handle("POST /api/auth/login", limit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/me", wrapAuth(authHandler.Me))

	mux.HandleFunc("GET /api/projects", projectHandler.List)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.Get)
	mux.Handle("POST /api/projects", wrapAuth(projectHandler.Create))
	mux.Handle("PUT /api/projects", wrapAuth(projectHandler.Update))
	mux.Handle("DELETE /api/projects", wrapAuth(projectHandler.Delete))
	mux.Handle("PUT /api/projects/collection", wrapAuth(projectHandler.Replace))

	mux.HandleFunc("GET /api/posts", postHandler.List)
	mux.HandleFunc("GET /api/posts/{slug}", postHandler.Get)
	mux.Handle("POST /api/posts", wrapAuth(postHandler.Create))
	mux.Handle("PUT /api/posts", wrapAuth(postHandler.Update))
	mux.Handle("DELETE /api/posts", wrapAuth(postHandler.Delete))

	mux.HandleFunc("GET /api/comments", commentHandler.List)
	mux.Handle("POST /api/comments", limit(commentHandler.Create))
	mux.Handle("DELETE /api/comments", wrapAuth(commentHandler.Delete))

	mux.HandleFunc("GET /api/timeline", timelineHandler.List)
	mux.Handle("POST /api/timeline", wrapAuth(timelineHandler.Create))
	mux.Handle("PUT /api/timeline", wrapAuth(timelineHandler.Update))
	mux.Handle("DELETE /api/timeline", wrapAuth(timelineHandler.Delete))
	mux.Handle("PUT /api/timeline/collection", wrapAuth(timelineHandler.Replace))

	mux.HandleFunc("GET /api/prompts", promptHandler.List)
	mux.Handle("POST /api/prompts", wrapAuth(promptHandler.Create))
	mux.Handle("PUT /api/prompts", wrapAuth(promptHandler.Update))
	mux.Handle("DELETE /api/prompts", wrapAuth(promptHandler.Delete))

	mux.HandleFunc("GET /api/stats", statsHandler.Get)
	mux.Handle("POST /api/stats", limit(statsHandler.Record))

	mux.Handle("POST /api/contact", limit(contactHandler.Submit))
	mux.Handle("GET /api/contact", wrapAuth(contactHandler.AdminList))
	mux.Handle("PATCH /api/contact/{id}/read", wrapAuth(contactHandler.MarkRead))

	mux.Handle("POST /api/upload", wrapAuth(uploadHandler.Upload))
	if d.UploadDir != "" {
		prefix := strings.TrimSuffix(d.UploadURLPrefix, "/")
		mux.Handle("GET "+prefix+"/", http.StripPrefix(prefix, noListing(http.FileServer(http.Dir(d.UploadDir)))))
	}

	var root http.Handler = mux
	root = h.CORS(root)
	root = SecurityHeaders(root)
	root = RequestLogger(root)
	root = middleware.Recoverer(root)
	root = middleware.RequestID(root)
	return root
}

// noListing hides directory indexes of the upload directory.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
