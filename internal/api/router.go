package api

import (
	"io/fs"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"curriculumstudio/internal/config"
)

type RouterConfig struct {
	Chat        http.Handler
	Assets      fs.FS
	HealthPath  string
	MetricsPath string
	Metrics     http.Handler
	// AdminCode is handed to the browser app through /config.js.
	AdminCode string
	// Requests is mounted at GET /api/requests when set.
	Requests http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.HealthPath == "" {
		cfg.HealthPath = "/healthz"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.Metrics == nil {
		cfg.Metrics = promhttp.Handler()
	}
	if cfg.AdminCode == "" {
		cfg.AdminCode = config.DefaultAdminCode
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/chat", cfg.Chat)
	if cfg.Requests != nil {
		mux.Handle("GET /api/requests", cfg.Requests)
	}
	mux.HandleFunc("GET "+cfg.HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET "+cfg.MetricsPath, cfg.Metrics)
	mux.Handle("GET /config.js", ClientConfigHandler(cfg.AdminCode))
	mux.Handle("/", SPAHandler(cfg.Assets))
	return mux
}
