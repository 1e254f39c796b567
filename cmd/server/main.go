package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/mail"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/storage"
	"github.com/portfolio/backend/pkg/auth"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()

	remote, closeRemote, err := repository.OpenRemote(ctx, cfg.KV)
	if err != nil {
		logging.Fatal("failed to open remote store", "backend", cfg.KV.Backend, "error", err)
	}
	defer closeRemote()
	if se, ok := remote.(repository.SchemaEnsurer); ok {
		// DB が落ちていてもファイル層で起動を続ける
		if err := se.EnsureSchema(ctx); err != nil {
			slog.Warn("could not ensure kv schema", "backend", remote.Name(), "error", err)
		}
	}

	store, err := repository.NewStore(remote, repository.NewFileBackend(cfg.DataDir), cfg.KV.Timeout)
	if err != nil {
		logging.Fatal("failed to create store", "error", err)
	}
	for _, tier := range store.Tiers() {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.KV.Timeout)
		if err := tier.Backend.Ping(pingCtx); err != nil {
			slog.Warn("storage tier unreachable at startup", "source", tier.Source, "backend", tier.Backend.Name(), "error", err)
		} else {
			slog.Info("storage tier ready", "source", tier.Source, "backend", tier.Backend.Name())
		}
		cancel()
	}

	router := newHandler(ctx, cfg, store)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "kv_backend", cfg.KV.Backend, "data_dir", cfg.DataDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newHandler はサービスを組み立ててルーターを返す
func newHandler(ctx context.Context, cfg *config.Config, store *repository.Store) http.Handler {
	var notifier service.Notifier
	smtpCfg := mail.Config{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		To:   cfg.SMTP.To,
	}
	if smtpCfg.Enabled() {
		notifier = mail.NewSMTPNotifier(smtpCfg)
	} else {
		slog.Info("SMTP not configured, contact messages are stored only")
	}

	uploads := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.URLPrefix)
	if err := uploads.Ping(ctx); err != nil {
		slog.Warn("upload directory is not writable, uploads will fail", "dir", cfg.Upload.Dir, "error", err)
	}

	authService := service.NewAuthService(cfg.Admin.Username, cfg.Admin.Password)
	if !authService.Enabled() {
		slog.Warn("ADMIN_USERNAME / ADMIN_PASSWORD not set, admin login is disabled")
	}
	if !cfg.AuthRequired {
		slog.Warn("AUTH_REQUIRED=false, admin endpoints are open")
	}

	return handler.NewRouter(handler.Deps{
		Store:       store,
		FrontendURL: cfg.FrontendURL,
		Projects:    service.NewProjectService(store),
		Posts:       service.NewPostService(store),
		Comments:    service.NewCommentService(store),
		Timeline:    service.NewTimelineService(store),
		Prompts:     service.NewPromptService(store),
		Stats:       service.NewStatsService(store),
		Contact:     service.NewContactService(store, notifier),
		Auth:        authService,

		Uploads:         uploads,
		UploadDir:       uploads.Dir(),
		UploadURLPrefix: cfg.Upload.URLPrefix,

		AuthConfig: handler.AuthConfig{
			SessionSecret: auth.SessionSecretBytes(cfg.Session.Secret),
			SessionTTL:    cfg.Session.TTL,
			SecureCookie:  strings.HasPrefix(cfg.FrontendURL, "https://"),
		},
		AuthRequired:       cfg.AuthRequired,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
}
