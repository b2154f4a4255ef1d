package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"curriculumstudio/internal/api"
	"curriculumstudio/internal/config"
	"curriculumstudio/internal/metrics"
	"curriculumstudio/internal/providers/openai_compat"
	"curriculumstudio/internal/storage"
	"curriculumstudio/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogger(cfg.Log.Level)
	log.Info().
		Str("addr", cfg.HTTP.ListenAddr()).
		Bool("api_key_configured", cfg.Provider.APIKey != "").
		Bool("audit_enabled", cfg.Audit.Enabled()).
		Msg("starting curriculum studio server")
	if cfg.Provider.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; /api/chat will answer with a configuration error")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		recorder api.Recorder
		requests http.Handler
	)
	if cfg.Audit.Enabled() {
		store, err := storage.Open(ctx, cfg.Audit.Driver, cfg.Audit.DSN, cfg.Audit.AutoMigrate)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize audit storage")
		}
		defer store.Close()
		recorder = store
		if cfg.Audit.ListEnabled {
			requests = api.RequestsHandler(store, log.Logger.With().Str("component", "requests").Logger())
			log.Info().Msg("audit listing enabled at GET /api/requests")
		}
	} else if cfg.Audit.ListEnabled {
		log.Warn().Msg("AUDIT_LIST_ENABLED is set but AUDIT_DB_DSN is empty; listing stays off")
	}

	assets, source := staticAssets(cfg.HTTP.StaticDir)
	log.Info().Str("source", source).Msg("static assets ready")

	chat := api.NewChatHandler(api.ChatConfig{
		Provider: openai_compat.New(openai_compat.Config{
			BaseURL: cfg.Provider.BaseURL,
			APIKey:  cfg.Provider.APIKey,
		}),
		APIKey:   cfg.Provider.APIKey,
		Recorder: recorder,
		Logger:   log.Logger.With().Str("component", "chat").Logger(),
		Metrics:  metrics.Global(),
	})

	httpServer := &http.Server{
		Addr: cfg.HTTP.ListenAddr(),
		Handler: api.NewRouter(api.RouterConfig{
			Chat:        chat,
			Assets:      assets,
			HealthPath:  cfg.HTTP.HealthPath,
			MetricsPath: cfg.HTTP.MetricsPath,
			AdminCode:   cfg.AdminCode,
			Requests:    requests,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("runtime error")
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to stop http server")
	}

	log.Info().Msg("stopped")
}

// staticAssets prefers a build directory on disk and falls back to the
// embedded copy.
func staticAssets(dir string) (fs.FS, string) {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir), dir
		}
	}
	return web.Dist(), "embedded"
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLogLevel(level))
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
