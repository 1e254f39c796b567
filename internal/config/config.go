package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/viper"
)

// KV backends selectable with KV_BACKEND.
const (
	BackendNone     = "none"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendLibSQL   = "libsql"
)

var backends = []string{BackendNone, BackendMemory, BackendRedis, BackendPostgres, BackendSQLite, BackendLibSQL}

const devSessionSecret = "dev-secret-change-in-production-32bytes"

type Config struct {
	Addr        string
	FrontendURL string
	LogLevel    string

	Admin struct {
		Username string
		Password string
	}
	Session struct {
		Secret string
		TTL    time.Duration
	}
	AuthRequired bool

	DataDir string
	KV      KVConfig

	Upload struct {
		Dir       string
		URLPrefix string
	}
	RateLimitPerMinute int

	SMTP struct {
		Host string
		Port int
		User string
		Pass string
		To   string
	}
}

// KVConfig selects and addresses the remote storage tier.
type KVConfig struct {
	Backend     string
	Timeout     time.Duration
	RedisURL    string
	Prefix      string
	DatabaseURL string
	SQLitePath  string
	LibSQLURL   string
	LibSQLToken string
}

// Load reads config.yaml from the given directories (default ".") when present,
// then overlays environment variables. Keys are the upper-case environment names.
func Load(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.Addr = v.GetString("addr")
	cfg.FrontendURL = v.GetString("frontend_url")
	cfg.LogLevel = v.GetString("log_level")

	cfg.Admin.Username = v.GetString("admin_username")
	cfg.Admin.Password = v.GetString("admin_password")
	cfg.Session.Secret = v.GetString("session_secret")
	cfg.Session.TTL = v.GetDuration("session_ttl")
	cfg.AuthRequired = v.GetBool("auth_required")

	cfg.DataDir = v.GetString("data_dir")
	cfg.KV.Backend = v.GetString("kv_backend")
	cfg.KV.Timeout = v.GetDuration("kv_timeout")
	cfg.KV.RedisURL = v.GetString("redis_url")
	cfg.KV.Prefix = v.GetString("kv_prefix")
	cfg.KV.DatabaseURL = v.GetString("database_url")
	cfg.KV.SQLitePath = v.GetString("sqlite_path")
	cfg.KV.LibSQLURL = v.GetString("libsql_url")
	cfg.KV.LibSQLToken = v.GetString("libsql_auth_token")

	cfg.Upload.Dir = v.GetString("upload_dir")
	cfg.Upload.URLPrefix = v.GetString("upload_url_prefix")
	cfg.RateLimitPerMinute = v.GetInt("rate_limit_per_minute")

	cfg.SMTP.Host = v.GetString("smtp_host")
	cfg.SMTP.Port = v.GetInt("smtp_port")
	cfg.SMTP.User = v.GetString("smtp_user")
	cfg.SMTP.Pass = v.GetString("smtp_pass")
	cfg.SMTP.To = v.GetString("contact_to")

	if cfg.Session.Secret == "" && !cfg.AuthRequired {
		cfg.Session.Secret = devSessionSecret
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("frontend_url", "http://localhost:3000")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("session_ttl", "168h")
	v.SetDefault("auth_required", true)
	v.SetDefault("data_dir", "./data")
	v.SetDefault("kv_backend", BackendNone)
	v.SetDefault("kv_timeout", "3s")
	v.SetDefault("kv_prefix", "portfolio:")
	v.SetDefault("sqlite_path", "./data/kv.db")
	v.SetDefault("upload_dir", "./public/images")
	v.SetDefault("upload_url_prefix", "/images")
	v.SetDefault("rate_limit_per_minute", 10)
	v.SetDefault("smtp_port", 587)

	// registered so AutomaticEnv picks them up through Get
	for _, k := range []string{
		"admin_username", "admin_password", "session_secret",
		"redis_url", "database_url", "libsql_url", "libsql_auth_token",
		"smtp_host", "smtp_user", "smtp_pass", "contact_to",
	} {
		v.SetDefault(k, "")
	}
}

func validate(cfg *Config) error {
	if !slices.Contains(backends, cfg.KV.Backend) {
		return fmt.Errorf("KV_BACKEND must be one of %v, got %q", backends, cfg.KV.Backend)
	}
	switch cfg.KV.Backend {
	case BackendRedis:
		if cfg.KV.RedisURL == "" {
			return errors.New("REDIS_URL is required when KV_BACKEND=redis")
		}
	case BackendPostgres:
		if cfg.KV.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when KV_BACKEND=postgres")
		}
	case BackendLibSQL:
		if cfg.KV.LibSQLURL == "" {
			return errors.New("LIBSQL_URL is required when KV_BACKEND=libsql")
		}
	}
	if cfg.AuthRequired && cfg.Session.Secret == "" {
		return errors.New("SESSION_SECRET is required when AUTH_REQUIRED=true")
	}
	if cfg.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Session.TTL)
	}
	if cfg.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", cfg.RateLimitPerMinute)
	}
	return nil
}
