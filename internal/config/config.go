// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and SWISH_-prefixed env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatabasePath points at the SQLite file backing the series store.
	// ":memory:" keeps everything in-process.
	DatabasePath string `koanf:"database_path"`

	// AppNamespace scopes stored collections, mirroring the
	// {appNamespace}/users/{userId}/basketball_shots layout.
	AppNamespace string `koanf:"app_namespace"`

	// SinkURL is the spreadsheet webhook endpoint. Empty disables the
	// mirror step; submissions then succeed on the store write alone.
	SinkURL string `koanf:"sink_url"`

	// SinkTimeoutMS bounds a single webhook POST.
	SinkTimeoutMS int `koanf:"sink_timeout_ms"`

	// SinkRatePerSec throttles webhook mirroring.
	SinkRatePerSec float64 `koanf:"sink_rate_per_sec"`

	// BootstrapToken, when set, is exchanged for the session identity.
	// When empty an anonymous identity is established instead.
	BootstrapToken string `koanf:"bootstrap_token"`

	// TokenSecret verifies the bootstrap token's HMAC signature.
	TokenSecret string `koanf:"token_secret"`

	// VoiceLocale is the fixed recognition locale.
	VoiceLocale string `koanf:"voice_locale"`

	// SnapshotBuffer sizes each subscriber's snapshot channel.
	SnapshotBuffer int `koanf:"snapshot_buffer"`

	// MaxHistoryLimit caps GET /history?limit.
	MaxHistoryLimit int `koanf:"max_history_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		DatabasePath:    "swish.db",
		AppNamespace:    "swish",
		SinkURL:         "",
		SinkTimeoutMS:   5000,
		SinkRatePerSec:  5,
		VoiceLocale:     "es-ES",
		SnapshotBuffer:  8,
		MaxHistoryLimit: 500,
	}
}
