package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/swish/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DatabasePath, convey.ShouldEqual, "swish.db")
				convey.So(cfg.AppNamespace, convey.ShouldEqual, "swish")
				convey.So(cfg.SinkURL, convey.ShouldEqual, "")
				convey.So(cfg.SinkTimeoutMS, convey.ShouldEqual, 5000)
				convey.So(cfg.VoiceLocale, convey.ShouldEqual, "es-ES")
				convey.So(cfg.SnapshotBuffer, convey.ShouldEqual, 8)
				convey.So(cfg.MaxHistoryLimit, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SWISH_ADDR", ":8080")
			_ = os.Setenv("SWISH_DATABASE_PATH", ":memory:")
			_ = os.Setenv("SWISH_SINK_URL", "https://sheets.example.com/hook")
			_ = os.Setenv("SWISH_VOICE_LOCALE", "en-US")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatabasePath, convey.ShouldEqual, ":memory:")
				convey.So(cfg.SinkURL, convey.ShouldEqual, "https://sheets.example.com/hook")
				convey.So(cfg.VoiceLocale, convey.ShouldEqual, "en-US")
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			clearConfigEnvVars()

			dir := t.TempDir()
			path := filepath.Join(dir, "swish.yaml")
			yaml := "addr: \":7070\"\nsink_rate_per_sec: 2\napp_namespace: court\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("SWISH_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values layer over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.SinkRatePerSec, convey.ShouldEqual, 2.0)
				convey.So(cfg.AppNamespace, convey.ShouldEqual, "court")
				convey.So(cfg.DatabasePath, convey.ShouldEqual, "swish.db")
			})

			convey.Convey("And env still wins over the file", func() {
				_ = os.Setenv("SWISH_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When a bootstrap token is set without a secret", func() {
			clearConfigEnvVars()
			_ = os.Setenv("SWISH_BOOTSTRAP_TOKEN", "abc.def.ghi")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When addr is emptied", func() {
			clearConfigEnvVars()
			_ = os.Setenv("SWISH_ADDR", "")
			defer clearConfigEnvVars()

			// An explicitly empty env var still unmarshals as empty.
			cfg, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"SWISH_CONFIG",
		"SWISH_ADDR",
		"SWISH_DATABASE_PATH",
		"SWISH_APP_NAMESPACE",
		"SWISH_SINK_URL",
		"SWISH_SINK_TIMEOUT_MS",
		"SWISH_SINK_RATE_PER_SEC",
		"SWISH_BOOTSTRAP_TOKEN",
		"SWISH_TOKEN_SECRET",
		"SWISH_VOICE_LOCALE",
		"SWISH_SNAPSHOT_BUFFER",
		"SWISH_MAX_HISTORY_LIMIT",
	} {
		_ = os.Unsetenv(key)
	}
}
