package app

import (
	"github.com/okian/swish/internal/adapters/store"
	"github.com/okian/swish/internal/identity"
	"github.com/okian/swish/pkg/logger"
)

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithIdentity sets the identity provider.
func WithIdentity(p identity.Provider) Option {
	return func(s *Session) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithStore sets the series store.
func WithStore(st store.Store) Option {
	return func(s *Session) {
		if st != nil {
			s.store = st
		}
	}
}

// WithSink sets the spreadsheet webhook sender.
func WithSink(sender Sender) Option {
	return func(s *Session) {
		if sender != nil {
			s.sink = sender
		}
	}
}

// WithVoice sets the dictation capability.
func WithVoice(d Dictation) Option {
	return func(s *Session) {
		if d != nil {
			s.voice = d
		}
	}
}

// WithLogger sets a custom logger for the session.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}
