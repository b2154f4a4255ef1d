package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"curriculumstudio/internal/config"
	"curriculumstudio/internal/studio"
	"curriculumstudio/internal/tui"
)

var (
	serverURL string
	adminCode string
	logFile   string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Terminal client for the curriculum studio server",
	Long: `Collects a topic, asks the studio server for a curriculum outline and
shows the research pipeline stages while the request is in flight.

Keys:
  enter   generate (or unlock inside the admin dialog)
  ctrl+a  open the admin dialog
  esc     close the dialog / leave full page mode
  ctrl+c  quit`,
	SilenceUsage: true,
	RunE:         runStudio,
}

func init() {
	cfg := config.LoadStudio()
	rootCmd.Flags().StringVar(&serverURL, "server", cfg.ServerURL, "Studio server base URL (or set STUDIO_SERVER_URL)")
	rootCmd.Flags().StringVar(&adminCode, "admin-code", cfg.AdminCode, "Code that unlocks full page mode (or set ADMIN_CODE)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of discarding them")
	rootCmd.Flags().StringVar(&logLevel, "log-level", cfg.Log.Level, "Log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runStudio(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(logFile, logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := studio.NewClient(serverURL, nil)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	notifier := tui.NewNotifier()
	s := studio.New(studio.Config{
		Requester: client,
		AdminCode: adminCode,
		OnChange:  notifier.Notify,
		Logger:    logger,
	})

	logger.Info().Str("server", serverURL).Msg("studio started")
	p := tea.NewProgram(tui.New(ctx, s, notifier), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run studio: %w", err)
	}
	logger.Info().Msg("studio stopped")
	return nil
}

func newLogger(path, level string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(f).Level(parseLogLevel(level)).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
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
