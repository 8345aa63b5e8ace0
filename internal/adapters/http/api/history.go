// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"

	"github.com/okian/swish/internal/domain/model"
)

// HistoryHandler handles chronological history requests.
type HistoryHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps Dependencies, maxLimit int) *HistoryHandler {
	return &HistoryHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetHistory handles GET /history?limit=N requests. Records come
// back ascending by timestamp, records without one first. Omitting limit
// returns everything up to the configured cap.
func (h *HistoryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_history"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	records := h.deps.History(r.Context())
	if len(records) > limit {
		records = records[:limit]
	}
	if records == nil {
		records = []model.Series{}
	}
	writeJSON(w, http.StatusOK, records)
}
