package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SWISH_CONFIG is set
//  3. env (prefix SWISH_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SWISH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SWISH_ADDR, SWISH_SINK_URL, ...
	// Map env keys like SWISH_SINK_URL -> sink_url (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SWISH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "swish_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DatabasePath == "":
		return fmt.Errorf("%w: database_path must not be empty", ErrInvalidConfig)
	case c.AppNamespace == "":
		return fmt.Errorf("%w: app_namespace must not be empty", ErrInvalidConfig)
	case c.SinkTimeoutMS <= 0:
		return fmt.Errorf("%w: sink_timeout_ms must be positive", ErrInvalidConfig)
	case c.SnapshotBuffer <= 0:
		return fmt.Errorf("%w: snapshot_buffer must be positive", ErrInvalidConfig)
	case c.BootstrapToken != "" && c.TokenSecret == "":
		return fmt.Errorf("%w: token_secret is required when bootstrap_token is set", ErrInvalidConfig)
	}
	return nil
}
