package sink_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/okian/swish/internal/adapters/sink"
	"github.com/okian/swish/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestSend(t *testing.T) {
	Convey("Given a reachable webhook endpoint", t, func() {
		type received struct {
			MadeShots    int    `json:"madeShots"`
			Observations string `json:"observations"`
		}
		var got received
		var contentType string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType = r.Header.Get("Content-Type")
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		c := sink.New(srv.URL, sink.WithRate(100))

		Convey("When sending a series", func() {
			err := c.Send(context.Background(), 38, "good session")

			Convey("Then the payload mirrors the record fields", func() {
				So(err, ShouldBeNil)
				So(got.MadeShots, ShouldEqual, 38)
				So(got.Observations, ShouldEqual, "good session")
				So(contentType, ShouldEqual, "application/json")
			})
		})
	})

	Convey("Given a webhook that answers with an error status", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer srv.Close()

		c := sink.New(srv.URL, sink.WithRate(100))

		Convey("Then Send still succeeds; the response is opaque by design", func() {
			So(c.Send(context.Background(), 20, ""), ShouldBeNil)
		})
	})

	Convey("Given an unreachable endpoint", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		c := sink.New(srv.URL, sink.WithRate(100))

		Convey("Then Send reports a transport failure", func() {
			err := c.Send(context.Background(), 20, "")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, sink.ErrTransport), ShouldBeTrue)
		})
	})

	Convey("Given a disabled client (no endpoint configured)", t, func() {
		c := sink.New("")

		Convey("Then Send is a no-op", func() {
			So(c.Enabled(), ShouldBeFalse)
			So(c.Send(context.Background(), 20, ""), ShouldBeNil)
		})
	})
}
