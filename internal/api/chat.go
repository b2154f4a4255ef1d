package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"curriculumstudio/internal/curriculum"
	"curriculumstudio/internal/metrics"
	"curriculumstudio/internal/providers"
	"curriculumstudio/internal/storage"
)

const (
	msgMissingAPIKey = "Missing API key configuration on server."
	msgTopicRequired = "Topic is required."
	msgInternal      = "Internal server error."
	upstreamPrefix   = "OpenAI error: "
)

// Recorder receives one entry per proxied request. Implemented by storage.Store.
type Recorder interface {
	RecordRequest(ctx context.Context, e storage.RequestEntry) error
}

type ChatRequest struct {
	Topic string `json:"topic"`
}

type errorBody struct {
	Error string `json:"error"`
}

type ChatHandler struct {
	provider providers.Provider
	apiKey   string
	recorder Recorder
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type ChatConfig struct {
	Provider providers.Provider
	APIKey   string
	Recorder Recorder
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
}

func NewChatHandler(cfg ChatConfig) *ChatHandler {
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global()
	}
	return &ChatHandler{
		provider: cfg.Provider,
		apiKey:   cfg.APIKey,
		recorder: cfg.Recorder,
		logger:   cfg.Logger,
		metrics:  m,
		now:      time.Now,
	}
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	var req ChatRequest

	status, outcome := h.serve(w, r, &req)

	h.metrics.ChatRequests.WithLabelValues(outcome).Inc()
	if h.recorder != nil {
		entry := storage.RequestEntry{
			Topic:      req.Topic,
			Status:     status,
			Outcome:    outcome,
			DurationMS: h.now().Sub(started).Milliseconds(),
		}
		if err := h.recorder.RecordRequest(context.WithoutCancel(r.Context()), entry); err != nil {
			h.logger.Error().Err(err).Msg("failed to record chat request")
		}
	}
}

func (h *ChatHandler) serve(w http.ResponseWriter, r *http.Request, req *ChatRequest) (int, string) {
	if strings.TrimSpace(h.apiKey) == "" {
		writeError(w, http.StatusInternalServerError, msgMissingAPIKey)
		return http.StatusInternalServerError, metrics.OutcomeConfigError
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err == nil {
		// an undecodable body leaves the topic empty
		_ = json.Unmarshal(body, req)
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, msgTopicRequired)
		return http.StatusBadRequest, metrics.OutcomeInvalidTopic
	}

	callStarted := h.now()
	resp, err := h.provider.Chat(r.Context(), curriculum.BuildRequest(req.Topic))
	h.metrics.UpstreamDuration.Observe(h.now().Sub(callStarted).Seconds())
	if err != nil {
		var statusErr *providers.StatusError
		if errors.As(err, &statusErr) {
			h.logger.Warn().Int("status", statusErr.StatusCode).Msg("provider returned error status")
			writeError(w, statusErr.StatusCode, upstreamPrefix+statusErr.Body)
			return statusErr.StatusCode, metrics.OutcomeUpstreamError
		}
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("server error")
		writeError(w, http.StatusInternalServerError, msgInternal)
		return http.StatusInternalServerError, metrics.OutcomeInternalError
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.Body)
	return http.StatusOK, metrics.OutcomeOK
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}
