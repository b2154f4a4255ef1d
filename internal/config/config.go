package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort      = 3000
	DefaultAdminCode = "CURRICULUM2026"
	DefaultServerURL = "http://localhost:3000"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrInvalidAuditDriver = errors.New("AUDIT_DB_DRIVER must be 'sqlite' or 'postgres'")

type Config struct {
	HTTP     HTTPConfig
	Provider ProviderConfig
	Audit    AuditConfig
	Log      LogConfig
	// AdminCode is handed to the browser app; it unlocks a view, not data.
	AdminCode string
}

type HTTPConfig struct {
	Port            int
	Host            string
	StaticDir       string
	HealthPath      string
	MetricsPath     string
	ShutdownTimeout time.Duration
}

// ListenAddr joins host and port, e.g. ":3000".
func (h HTTPConfig) ListenAddr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

type ProviderConfig struct {
	// APIKey may be empty; requests then fail with a configuration error.
	APIKey  string
	BaseURL string
}

type AuditConfig struct {
	Driver      string
	DSN         string
	AutoMigrate bool
	// ListEnabled mounts GET /api/requests over the audit log.
	ListEnabled bool
}

func (a AuditConfig) Enabled() bool {
	return a.DSN != ""
}

type LogConfig struct {
	Level string
}

// StudioConfig configures the terminal client.
type StudioConfig struct {
	ServerURL string
	AdminCode string
	Log       LogConfig
}

func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:            mustInt("PORT", DefaultPort),
			Host:            mustEnv("LISTEN_HOST", ""),
			StaticDir:       mustEnv("STATIC_DIR", "dist"),
			HealthPath:      mustEnv("HEALTH_PATH", "/healthz"),
			MetricsPath:     mustEnv("METRICS_PATH", "/metrics"),
			ShutdownTimeout: mustDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Provider: ProviderConfig{
			APIKey:  mustEnv("OPENAI_API_KEY", ""),
			BaseURL: mustEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		},
		Audit: AuditConfig{
			Driver:      strings.ToLower(mustEnv("AUDIT_DB_DRIVER", DriverSQLite)),
			DSN:         mustEnv("AUDIT_DB_DSN", ""),
			AutoMigrate: mustBool("AUTO_MIGRATE", true),
			ListEnabled: mustBool("AUDIT_LIST_ENABLED", false),
		},
		Log: LogConfig{
			Level: strings.ToLower(mustEnv("LOG_LEVEL", "info")),
		},
		AdminCode: mustEnv("ADMIN_CODE", DefaultAdminCode),
	}

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("PORT %d out of range", cfg.HTTP.Port)
	}
	switch cfg.Audit.Driver {
	case DriverSQLite, "sqlite3":
		cfg.Audit.Driver = DriverSQLite
	case DriverPostgres, "postgresql", "pgx":
		cfg.Audit.Driver = DriverPostgres
	default:
		return nil, ErrInvalidAuditDriver
	}
	if !strings.HasPrefix(cfg.HTTP.HealthPath, "/") || !strings.HasPrefix(cfg.HTTP.MetricsPath, "/") {
		return nil, fmt.Errorf("HEALTH_PATH and METRICS_PATH must start with '/'")
	}

	return cfg, nil
}

func LoadStudio() *StudioConfig {
	loadDotEnv()

	return &StudioConfig{
		ServerURL: mustEnv("STUDIO_SERVER_URL", DefaultServerURL),
		AdminCode: mustEnv("ADMIN_CODE", DefaultAdminCode),
		Log: LogConfig{
			Level: strings.ToLower(mustEnv("LOG_LEVEL", "info")),
		},
	}
}

// loadDotEnv reads .env from the working directory when present. Variables
// already set in the environment win.
func loadDotEnv() {
	_ = godotenv.Load()
}

func mustEnv(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func mustInt(key string, def int) int {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func mustBool(key string, def bool) bool {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func mustDuration(key string, def time.Duration) time.Duration {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
