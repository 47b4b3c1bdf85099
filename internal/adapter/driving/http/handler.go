// Package httphandler is the HTTP driving adapter serving the ops API.
package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/samber/lo"

	"pagepilot/internal/application"
	"pagepilot/internal/config"
	"pagepilot/internal/domain/model"
	"pagepilot/internal/domain/port/driven"
	"pagepilot/internal/redact"
)

const defaultRepliesLimit = 50

// Handler serves the JSON ops API: health, loop status, ledger audit, and
// manual poll triggering.
type Handler struct {
	replies  driven.ReplyStore
	replySvc *application.ReplyService
	cfg      *config.Config
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(replies driven.ReplyStore, replySvc *application.ReplyService, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		replies:  replies,
		replySvc: replySvc,
		cfg:      cfg,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/status", h.Status)
	mux.HandleFunc("GET /api/v1/replies", h.ListReplies)
	mux.HandleFunc("POST /api/v1/poll", h.TriggerPoll)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// Status returns the loop snapshot plus ledger totals.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	total, err := h.replies.Count(r.Context())
	if err != nil {
		h.logger.Error("failed to count replies", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toStatusResponse(h.cfg, h.replySvc.Snapshot(), total))
}

// ListReplies returns recent ledger records, most recent first. The limit
// query parameter caps the result (default 50).
func (h *Handler) ListReplies(w http.ResponseWriter, r *http.Request) {
	limit := defaultRepliesLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	records, err := h.replies.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list replies", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(records, func(rec model.ReplyRecord, _ int) ReplyResponse {
		return toReplyResponse(rec)
	}))
}

// TriggerPoll runs a poll cycle immediately. The cycle's own failures are
// already handled inside the loop's failure boundary, so this reports
// 202 either way once the cycle has run.
func (h *Handler) TriggerPoll(w http.ResponseWriter, r *http.Request) {
	if err := h.replySvc.RefreshNow(r.Context()); err != nil {
		h.logger.Warn("manual poll cycle finished with error", "error", redact.Tokens(err.Error()))
	}
	writeJSON(w, http.StatusAccepted, TriggerResponse{Triggered: true})
}
