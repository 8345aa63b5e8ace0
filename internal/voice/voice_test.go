package voice_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/swish/internal/voice"
	"github.com/okian/swish/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// scriptedRecognizer replays a fixed sequence of recognition events.
type scriptedRecognizer struct {
	events  []voice.Event
	locale  string
	stopped bool
}

func (r *scriptedRecognizer) Start(ctx context.Context, locale string) (<-chan voice.Event, func(), error) {
	r.locale = locale
	ch := make(chan voice.Event, len(r.events))
	for _, ev := range r.events {
		ch <- ev
	}
	close(ch)
	return ch, func() { r.stopped = true }, nil
}

func TestListen(t *testing.T) {
	ctx := context.Background()

	Convey("Given a recognizer that produces a transcript", t, func() {
		rec := &scriptedRecognizer{events: []voice.Event{
			{Kind: voice.EventStart},
			{Kind: voice.EventResult, Transcript: "buen ritmo de tiro"},
			{Kind: voice.EventEnd},
		}}
		c := voice.NewCapture(rec)

		Convey("When listening", func() {
			var transcripts []string
			denied := false
			err := c.Listen(ctx, func(s string) { transcripts = append(transcripts, s) }, func() { denied = true })

			Convey("Then the transcript is delivered once", func() {
				So(err, ShouldBeNil)
				So(transcripts, ShouldResemble, []string{"buen ritmo de tiro"})
				So(denied, ShouldBeFalse)
			})

			Convey("And the listening indicator is cleared afterwards", func() {
				So(c.Listening(), ShouldBeFalse)
			})

			Convey("And the session used the fixed locale", func() {
				So(rec.locale, ShouldEqual, "es-ES")
			})
		})
	})

	Convey("Given a recognizer that reports a permission denial", t, func() {
		rec := &scriptedRecognizer{events: []voice.Event{
			{Kind: voice.EventStart},
			{Kind: voice.EventError, Err: voice.ErrorPermissionDenied},
			{Kind: voice.EventEnd},
		}}
		c := voice.NewCapture(rec)

		Convey("Then the denial surfaces and no transcript is delivered", func() {
			var transcripts []string
			denied := false
			err := c.Listen(ctx, func(s string) { transcripts = append(transcripts, s) }, func() { denied = true })

			So(err, ShouldBeNil)
			So(denied, ShouldBeTrue)
			So(transcripts, ShouldBeEmpty)
			So(c.Listening(), ShouldBeFalse)
		})
	})

	Convey("Given a recognizer that detects no speech", t, func() {
		rec := &scriptedRecognizer{events: []voice.Event{
			{Kind: voice.EventStart},
			{Kind: voice.EventError, Err: voice.ErrorNoSpeech},
			{Kind: voice.EventEnd},
		}}
		c := voice.NewCapture(rec)

		Convey("Then the error is a silent no-op", func() {
			denied := false
			err := c.Listen(ctx, nil, func() { denied = true })

			So(err, ShouldBeNil)
			So(denied, ShouldBeFalse)
			So(c.Listening(), ShouldBeFalse)
		})
	})

	Convey("Given no recognizer capability", t, func() {
		c := voice.NewCapture(nil)

		Convey("Then Listen fails synchronously with ErrUnsupported", func() {
			So(c.Available(), ShouldBeFalse)
			err := c.Listen(ctx, nil, nil)
			So(errors.Is(err, voice.ErrUnsupported), ShouldBeTrue)
		})
	})

	Convey("Given a custom locale", t, func() {
		rec := &scriptedRecognizer{events: []voice.Event{{Kind: voice.EventEnd}}}
		c := voice.NewCapture(rec, voice.WithLocale("en-US"))

		Convey("Then sessions start with it", func() {
			So(c.Listen(ctx, nil, nil), ShouldBeNil)
			So(rec.locale, ShouldEqual, "en-US")
		})
	})
}
