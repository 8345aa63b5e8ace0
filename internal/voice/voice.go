// Package voice integrates an external speech recognizer for dictating
// observations.
//
// Recognition is optional and capability-gated: without a recognizer the
// capture informs the caller synchronously and performs no async work. A
// session is single-shot (non-continuous) in a fixed locale.
package voice

import (
	"context"
	"sync"

	"github.com/okian/swish/pkg/logger"
	"github.com/okian/swish/pkg/metrics"
)

// EventKind identifies a recognition session event.
type EventKind string

// Recognition session events.
const (
	EventStart  EventKind = "start"
	EventResult EventKind = "result"
	EventError  EventKind = "error"
	EventEnd    EventKind = "end"
)

// ErrorKind classifies recognition errors. Only permission denials surface
// to the user; everything else (including no-speech) is a silent no-op.
type ErrorKind string

// Recognition error kinds.
const (
	ErrorPermissionDenied ErrorKind = "not-allowed"
	ErrorNoSpeech         ErrorKind = "no-speech"
	ErrorAborted          ErrorKind = "aborted"
	ErrorNetwork          ErrorKind = "network"
)

// Event is one asynchronous recognition event.
type Event struct {
	Kind       EventKind
	Transcript string
	Err        ErrorKind
}

// Recognizer is the external speech-to-text capability. Start opens a
// single-shot session in the given locale; the returned stop function
// aborts it. The event channel closes when the session ends.
type Recognizer interface {
	Start(ctx context.Context, locale string) (<-chan Event, func(), error)
}

// Default capture configuration constants.
const defaultLocale = "es-ES"

// Capture drives recognition sessions and tracks the listening indicator.
type Capture struct {
	recognizer Recognizer
	locale     string
	logger     logger.Logger

	mu        sync.Mutex
	listening bool
}

// Option applies a configuration option to the Capture.
type Option func(*Capture)

// WithLocale sets the fixed recognition locale.
func WithLocale(locale string) Option {
	return func(c *Capture) {
		if locale != "" {
			c.locale = locale
		}
	}
}

// WithLogger sets a custom logger for the capture.
func WithLogger(l logger.Logger) Option {
	return func(c *Capture) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCapture creates a capture around a recognizer. A nil recognizer means
// the capability is absent.
func NewCapture(recognizer Recognizer, opts ...Option) *Capture {
	c := &Capture{
		recognizer: recognizer,
		locale:     defaultLocale,
		logger:     logger.Get().Named("voice"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether the speech capability is present.
func (c *Capture) Available() bool {
	return c.recognizer != nil
}

// Listening reports whether a session is currently active.
func (c *Capture) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Listen runs one single-shot recognition session. Each successful
// transcript is delivered to onTranscript; a permission denial is delivered
// to onDenied. All other error kinds are suppressed.
//
// The listening indicator is set on the start event and cleared on the
// first of result, error or end. Listen blocks until the session ends.
func (c *Capture) Listen(ctx context.Context, onTranscript func(string), onDenied func()) error {
	if !c.Available() {
		return ErrUnsupported
	}

	events, stop, err := c.recognizer.Start(ctx, c.locale)
	if err != nil {
		return err
	}
	defer stop()

	metrics.RecordVoiceSessionStarted()

	for {
		select {
		case <-ctx.Done():
			c.setListening(false)
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				c.setListening(false)
				return nil
			}
			switch ev.Kind {
			case EventStart:
				c.setListening(true)
			case EventResult:
				c.setListening(false)
				if onTranscript != nil && ev.Transcript != "" {
					onTranscript(ev.Transcript)
				}
			case EventError:
				c.setListening(false)
				if ev.Err == ErrorPermissionDenied {
					metrics.RecordVoiceSessionDenied()
					if onDenied != nil {
						onDenied()
					}
				} else {
					// No speech, aborts and the rest stay silent.
					c.logger.Debug(ctx, "recognition error suppressed",
						logger.String("kind", string(ev.Err)))
				}
			case EventEnd:
				c.setListening(false)
			}
		}
	}
}

func (c *Capture) setListening(v bool) {
	c.mu.Lock()
	c.listening = v
	c.mu.Unlock()
}
