// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/swish/internal/domain/model"
)

// ViewHandler handles page-router state requests.
type ViewHandler struct {
	deps Dependencies
}

// NewViewHandler creates a new view handler.
func NewViewHandler(deps Dependencies) *ViewHandler {
	return &ViewHandler{deps: deps}
}

// viewPayload carries the selected page view.
type viewPayload struct {
	View model.View `json:"view"`
}

// HandleView handles GET and PUT /view requests. Switching views is purely
// local state: no network activity, no form reset.
func (h *ViewHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	const op = "api.view"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, viewPayload{View: h.deps.View()})
	case http.MethodPut:
		var req viewPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.SwitchView(req.View); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeJSON(w, http.StatusOK, viewPayload{View: h.deps.View()})
	default:
		http.NotFound(w, r)
	}
}
