// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/swish/internal/adapters/store"
	"github.com/okian/swish/internal/app"
	"github.com/okian/swish/internal/domain/model"
	"github.com/okian/swish/internal/domain/stats"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the session implementation.
type Dependencies interface {
	// Form workflow
	SetMadeShots(n int) error
	SetObservations(text string)
	Submit(ctx context.Context) (string, error)

	// Read model
	Aggregate(ctx context.Context) stats.Aggregate
	History(ctx context.Context) []model.Series
	State() app.State
	UserID() string

	// Page router
	View() model.View
	SwitchView(v model.View) error

	// Voice capture
	Dictate(ctx context.Context) error
}

// Watcher opens live snapshot subscriptions for the watch endpoint.
type Watcher interface {
	Subscribe(ctx context.Context, userID string) (<-chan store.Snapshot, store.CancelFunc, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	seriesHandler  *SeriesHandler
	statsHandler   *StatsHandler
	historyHandler *HistoryHandler
	watchHandler   *WatchHandler
	viewHandler    *ViewHandler
	voiceHandler   *VoiceHandler
	healthHandler  *HealthHandler
	pageHandler    *pageHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, watcher Watcher, maxHistoryLimit int) *Server {
	return &Server{
		seriesHandler:  NewSeriesHandler(deps),
		statsHandler:   NewStatsHandler(deps),
		historyHandler: NewHistoryHandler(deps, maxHistoryLimit),
		watchHandler:   NewWatchHandler(deps, watcher),
		viewHandler:    NewViewHandler(deps),
		voiceHandler:   NewVoiceHandler(deps),
		healthHandler:  NewHealthHandler(),
		pageHandler:    newPageHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", s.healthHandler.HandleHealth)
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/series", MetricsMiddleware(s.seriesHandler.HandlePostSeries, "series"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleGetStats, "stats"))
	mux.HandleFunc("/history", MetricsMiddleware(s.historyHandler.HandleGetHistory, "history"))
	mux.HandleFunc("/watch", MetricsMiddleware(s.watchHandler.HandleWatch, "watch"))
	mux.HandleFunc("/view", MetricsMiddleware(s.viewHandler.HandleView, "view"))
	mux.HandleFunc("/voice", MetricsMiddleware(s.voiceHandler.HandlePostVoice, "voice"))
	mux.HandleFunc("/", s.pageHandler.HandlePage)
}

// seriesRequest mirrors the submit form fields.
type seriesRequest struct {
	MadeShots    int    `json:"madeShots"`
	Observations string `json:"observations"`
}

// submitResponse reports the submit outcome and the resulting form state.
type submitResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Form    app.State `json:"form"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
