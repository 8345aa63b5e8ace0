package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/swish/internal/adapters/http/api"
	"github.com/okian/swish/internal/adapters/http/swagger"
	"github.com/okian/swish/internal/adapters/sink"
	"github.com/okian/swish/internal/adapters/store"
	"github.com/okian/swish/internal/app"
	"github.com/okian/swish/internal/config"
	"github.com/okian/swish/internal/identity"
	"github.com/okian/swish/internal/voice"
	"github.com/okian/swish/pkg/logger"
	"github.com/okian/swish/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
	storeMetricsInterval  = 5 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to flush logs: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Persistent per-user series store.
	seriesStore, err := store.NewSQLiteStore(cfg.DatabasePath,
		store.WithNamespace(cfg.AppNamespace),
		store.WithSnapshotBuffer(cfg.SnapshotBuffer),
		store.WithLogger(loggerInstance),
	)
	if err != nil {
		os.Stderr.WriteString("failed to open store: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := seriesStore.Close(); err != nil {
			loggerInstance.Error(ctx, "store close failed", logger.Error(err))
		}
	}()

	// Spreadsheet webhook mirror. An empty URL disables it.
	webhook := sink.New(cfg.SinkURL,
		sink.WithTimeout(time.Duration(cfg.SinkTimeoutMS)*time.Millisecond),
		sink.WithRate(cfg.SinkRatePerSec),
		sink.WithLogger(loggerInstance),
	)

	resolver := identity.NewResolver(
		identity.WithBootstrapToken(cfg.BootstrapToken),
		identity.WithTokenSecret(cfg.TokenSecret),
	)

	// No speech recognizer is wired on the server; dictation is reported
	// as unavailable and the entry page falls back to typing.
	dictation := voice.NewCapture(nil,
		voice.WithLocale(cfg.VoiceLocale),
		voice.WithLogger(loggerInstance),
	)

	session := app.New(
		app.WithIdentity(resolver),
		app.WithStore(seriesStore),
		app.WithSink(webhook),
		app.WithVoice(dictation),
		app.WithLogger(loggerInstance),
	)
	if err := session.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start session: " + err.Error() + "\n")
		return
	}
	defer session.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Start store metrics updater
	go startStoreMetricsUpdater(ctx, seriesStore)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// API documentation under /api-docs
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(session, seriesStore, cfg.MaxHistoryLimit)
	apiServer.Register(ctx, mux)

	// No WriteTimeout: /watch holds its response open for the life of
	// the subscription.
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startStoreMetricsUpdater starts a background goroutine that mirrors store totals.
func startStoreMetricsUpdater(ctx context.Context, st store.Store) {
	ticker := time.NewTicker(storeMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateTotalRecords(st.Count(ctx))
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
