package main

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/okian/swish/internal/adapters/http/api"
	"github.com/okian/swish/internal/app"
	"github.com/okian/swish/internal/config"
	"github.com/okian/swish/internal/identity"
	"github.com/okian/swish/internal/voice"
	"github.com/okian/swish/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("SWISH_ADDR", ":8080")
			_ = os.Setenv("SWISH_SINK_RATE_PER_SEC", "2")
			defer func() {
				_ = os.Unsetenv("SWISH_ADDR")
				_ = os.Unsetenv("SWISH_SINK_RATE_PER_SEC")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.SinkRatePerSec, convey.ShouldEqual, 2.0)
			})
		})

		convey.Convey("When testing session creation", func() {
			convey.Convey("Then a session should be creatable with default options", func() {
				session := app.New()
				convey.So(session, convey.ShouldNotBeNil)
			})

			convey.Convey("And a session should be creatable with custom options", func() {
				session := app.New(
					app.WithIdentity(identity.NewResolver()),
					app.WithVoice(voice.NewCapture(nil)),
				)
				convey.So(session, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP route registration", func() {
			session := app.New(app.WithIdentity(identity.NewResolver()))
			mux := http.NewServeMux()
			apiServer := api.NewServer(session, nil, 500)

			convey.Convey("Then routes should register without panicking", func() {
				convey.So(func() {
					apiServer.Register(context.Background(), mux)
				}, convey.ShouldNotPanic)
			})
		})
	})
}
