// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/swish/internal/domain/stats"
)

// WatchHandler streams live snapshots over Server-Sent Events.
type WatchHandler struct {
	deps    Dependencies
	watcher Watcher
}

// NewWatchHandler creates a new watch handler.
func NewWatchHandler(deps Dependencies, watcher Watcher) *WatchHandler {
	return &WatchHandler{
		deps:    deps,
		watcher: watcher,
	}
}

// watchEvent is one SSE payload: the full record set plus its aggregates.
type watchEvent struct {
	Records interface{}     `json:"records"`
	Stats   stats.Aggregate `json:"stats"`
}

// HandleWatch handles GET /watch requests. Every store change pushes one
// `data:` line carrying the rebuilt snapshot; the subscription is released
// when the client disconnects.
func (h *WatchHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.watch"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", NewKind(op, ErrUnsupported))
		return
	}

	snapshots, cancel, err := h.watcher.Subscribe(r.Context(), h.deps.UserID())
	if err != nil {
		writeError(w, http.StatusBadGateway, "subscribe_failed", Wrap(op, err))
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			payload, err := json.Marshal(watchEvent{
				Records: snap.Records,
				Stats:   stats.Compute(snap.Records),
			})
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
