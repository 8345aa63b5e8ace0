// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/okian/swish/internal/app"
	"github.com/okian/swish/internal/domain/message"
)

// VoiceHandler handles dictation requests.
type VoiceHandler struct {
	deps Dependencies
}

// NewVoiceHandler creates a new voice handler.
func NewVoiceHandler(deps Dependencies) *VoiceHandler {
	return &VoiceHandler{deps: deps}
}

// voiceResponse reports the dictation outcome and the resulting form state.
type voiceResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	Form    app.State `json:"form"`
}

// HandlePostVoice handles POST /voice requests. It runs one single-shot
// recognition session; transcripts land in the observations field. When the
// capability is absent the user is informed synchronously and no async work
// starts.
func (h *VoiceHandler) HandlePostVoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.Dictate(r.Context()); err != nil {
		if errors.Is(err, app.ErrVoiceUnsupported) {
			writeJSON(w, http.StatusConflict, voiceResponse{
				Status:  "unsupported",
				Message: message.VoiceUnsupported,
				Form:    h.deps.State(),
			})
			return
		}
		// Recognition errors other than permission denial are silent by
		// policy; whatever reaches here is a session-level failure.
		writeJSON(w, http.StatusBadGateway, voiceResponse{
			Status: "failed",
			Form:   h.deps.State(),
		})
		return
	}

	writeJSON(w, http.StatusOK, voiceResponse{
		Status: "done",
		Form:   h.deps.State(),
	})
}
