package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"pagepilot/internal/application"
	"pagepilot/internal/config"
	"pagepilot/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// ReplyResponse is the JSON representation of a ledger record.
type ReplyResponse struct {
	CommentID string `json:"comment_id"`
	PostID    string `json:"post_id,omitempty"`
	ReplyText string `json:"reply_text"`
	RepliedAt string `json:"replied_at"`
}

// StatusResponse is the JSON representation of the loop status endpoint.
type StatusResponse struct {
	PageID            string `json:"page_id"`
	DryRun            bool   `json:"dry_run"`
	PollInterval      string `json:"poll_interval"`
	TotalReplies      int64  `json:"total_replies"`
	Cycles            int64  `json:"cycles"`
	LastCycleAt       string `json:"last_cycle_at,omitempty"`
	LastCycleDuration string `json:"last_cycle_duration,omitempty"`
	LastCycleError    string `json:"last_cycle_error,omitempty"`
}

// TriggerResponse is the JSON body returned by the manual poll endpoint.
type TriggerResponse struct {
	Triggered bool `json:"triggered"`
}

// toReplyResponse converts a ledger record to its JSON representation.
func toReplyResponse(rec model.ReplyRecord) ReplyResponse {
	return ReplyResponse{
		CommentID: rec.CommentID,
		PostID:    rec.PostID,
		ReplyText: rec.ReplyText,
		RepliedAt: rec.RepliedAt.UTC().Format(time.RFC3339),
	}
}

// toStatusResponse combines config, the loop snapshot, and ledger totals.
func toStatusResponse(cfg *config.Config, st application.Status, total int64) StatusResponse {
	resp := StatusResponse{
		PageID:         cfg.PageID,
		DryRun:         cfg.DryRun,
		PollInterval:   cfg.PollInterval.String(),
		TotalReplies:   total,
		Cycles:         st.Cycles,
		LastCycleError: st.LastCycleError,
	}
	if !st.LastCycleAt.IsZero() {
		resp.LastCycleAt = st.LastCycleAt.UTC().Format(time.RFC3339)
		resp.LastCycleDuration = st.LastCycleDuration.Round(time.Millisecond).String()
	}
	return resp
}
