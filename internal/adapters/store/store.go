// Package store defines the series store contract and its SQLite implementation.
//
// The store is an append-only collection of shot-series records scoped per
// user. Reads happen through live subscriptions: every change pushes a full
// snapshot, never an incremental patch.
package store

import (
	"context"

	"github.com/okian/swish/internal/domain/model"
)

// Snapshot is the complete record set for one user at a point in time.
type Snapshot struct {
	Records []model.Series
}

// CancelFunc releases a subscription. Safe to call more than once.
type CancelFunc func()

// Store provides append-only writes and live full-snapshot reads.
type Store interface {
	// Append inserts a record for a user. The store assigns the id and
	// the timestamp (server ordering value). Returns ErrOutOfRange when
	// madeShots is outside [model.MinMadeShots, model.MaxMadeShots].
	Append(ctx context.Context, userID string, madeShots int, observations string) (model.Series, error)

	// Subscribe opens a live subscription scoped to one user. The initial
	// snapshot is delivered immediately; a fresh full snapshot follows
	// every append. Slow consumers see snapshots coalesced latest-wins.
	// The CancelFunc must be called to release the listener.
	Subscribe(ctx context.Context, userID string) (<-chan Snapshot, CancelFunc, error)

	// History returns the user's records as a one-off read.
	History(ctx context.Context, userID string) ([]model.Series, error)

	// Count returns the total number of records across all users.
	Count(ctx context.Context) int

	// Close releases the store and terminates all subscriptions.
	Close() error
}
