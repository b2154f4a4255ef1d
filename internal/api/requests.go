package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"curriculumstudio/internal/storage"
)

const maxListLimit = 500

// RequestLister reads back the audit log. Implemented by storage.Store.
type RequestLister interface {
	RecentRequests(ctx context.Context, limit uint64) ([]storage.RequestEntry, error)
}

type requestEntryView struct {
	ID         int64  `json:"id"`
	Topic      string `json:"topic"`
	Status     int    `json:"status"`
	Outcome    string `json:"outcome"`
	DurationMS int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"`
}

// RequestsHandler lists recent audit entries, newest first. The optional
// limit query parameter is capped at maxListLimit.
func RequestsHandler(lister RequestLister, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var limit uint64
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || n == 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = min(n, maxListLimit)
		}

		entries, err := lister.RecentRequests(r.Context(), limit)
		if err != nil {
			logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to list chat requests")
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}

		out := make([]requestEntryView, 0, len(entries))
		for _, e := range entries {
			out = append(out, requestEntryView{
				ID:         e.ID,
				Topic:      e.Topic,
				Status:     e.Status,
				Outcome:    e.Outcome,
				DurationMS: e.DurationMS,
				CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(out)
	})
}
