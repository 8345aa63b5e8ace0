// Package identity resolves the stable per-session user identifier.
//
// Exactly one resolution happens per app session, before any store access.
// A configured bootstrap token is exchanged for its subject; otherwise an
// anonymous identity is established. Resolution failure is terminal for the
// session and is not retried.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is the resolved identity for the lifetime of the app session.
type Session struct {
	UserID    string
	Anonymous bool
}

// Provider yields the session identity.
type Provider interface {
	Resolve(ctx context.Context) (Session, error)
}

// Resolver implements Provider with token-exchange and anonymous modes.
type Resolver struct {
	token  string
	secret []byte
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithBootstrapToken sets the externally supplied session credential.
func WithBootstrapToken(token string) Option {
	return func(r *Resolver) {
		r.token = strings.TrimSpace(token)
	}
}

// WithTokenSecret sets the HMAC secret used to verify the bootstrap token.
func WithTokenSecret(secret string) Option {
	return func(r *Resolver) {
		if secret != "" {
			r.secret = []byte(secret)
		}
	}
}

// NewResolver constructs a Resolver with the given options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the session identity. With a bootstrap token configured
// it verifies the token and uses its subject claim; without one it mints an
// anonymous identity.
func (r *Resolver) Resolve(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	if r.token == "" {
		return Session{
			UserID:    "anon-" + uuid.NewString(),
			Anonymous: true,
		}, nil
	}

	parsed, err := jwt.Parse(r.token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %q", ErrInvalidToken, t.Method.Alg())
		}
		return r.secret, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return Session{}, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	return Session{UserID: subject}, nil
}
