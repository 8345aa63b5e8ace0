// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

// SeriesHandler handles series submissions.
type SeriesHandler struct {
	deps Dependencies
}

// NewSeriesHandler creates a new series handler.
func NewSeriesHandler(deps Dependencies) *SeriesHandler {
	return &SeriesHandler{deps: deps}
}

// HandlePostSeries handles POST /series requests. It runs the submit
// workflow with the posted fields: store write, sink mirror, tiered
// message, form reset on success / fields retained on failure.
func (h *SeriesHandler) HandlePostSeries(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_series"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req seriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Out-of-range counts are rejected before any side effect.
	if err := h.deps.SetMadeShots(req.MadeShots); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	h.deps.SetObservations(req.Observations)

	msg, err := h.deps.Submit(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, submitResponse{
			Status:  "failed",
			Message: msg,
			Form:    h.deps.State(),
		})
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{
		Status:  "saved",
		Message: msg,
		Form:    h.deps.State(),
	})
}
