package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/okian/swish/internal/domain/model"
	"github.com/okian/swish/internal/domain/stats"
	"github.com/okian/swish/pkg/logger"
	"github.com/okian/swish/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultNamespace      = "swish"
	defaultSnapshotBuffer = 8
)

// SQLiteStore implements Store on a SQLite database.
type SQLiteStore struct {
	db             *sql.DB
	namespace      string
	snapshotBuffer int
	logger         logger.Logger

	mu          sync.Mutex
	subscribers map[string]map[*subscriber]struct{}
	closed      bool
}

// subscriber is one live snapshot listener.
type subscriber struct {
	ch   chan Snapshot
	once sync.Once
}

// NewSQLiteStore opens (or creates) the database at path and applies
// pending migrations. The path can be ":memory:" for an in-memory store.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{
		namespace:      defaultNamespace,
		snapshotBuffer: defaultSnapshotBuffer,
		logger:         logger.Get().Named("store"),
		subscribers:    make(map[string]map[*subscriber]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	// A single connection keeps snapshot rebuilds serialized with writes
	// and avoids separate :memory: databases per connection.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.db = db
	return s, nil
}

// Append inserts a record and pushes a fresh snapshot to the user's
// subscribers. The id and timestamp are assigned here, never by callers.
func (s *SQLiteStore) Append(ctx context.Context, userID string, madeShots int, observations string) (model.Series, error) {
	if !model.ValidMadeShots(madeShots) {
		return model.Series{}, fmt.Errorf("%w: %d", ErrOutOfRange, madeShots)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return model.Series{}, ErrClosed
	}
	s.mu.Unlock()

	record := model.Series{
		ID:           uuid.NewString(),
		MadeShots:    madeShots,
		Observations: observations,
		Timestamp:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shot_series (id, namespace, user_id, made_shots, observations, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, s.namespace, userID, record.MadeShots, record.Observations,
		record.Timestamp.UnixMicro(),
	)
	if err != nil {
		metrics.RecordStoreAppendError()
		return model.Series{}, fmt.Errorf("failed to append series: %w", err)
	}
	metrics.RecordStoreAppend()
	metrics.UpdateTotalRecords(s.Count(ctx))

	s.publish(ctx, userID)
	return record, nil
}

// Subscribe registers a live listener for one user's collection. The
// initial snapshot is delivered before Subscribe returns.
func (s *SQLiteStore) Subscribe(ctx context.Context, userID string) (<-chan Snapshot, CancelFunc, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	sub := &subscriber{ch: make(chan Snapshot, s.snapshotBuffer)}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, nil, ErrClosed
	}
	if s.subscribers[userID] == nil {
		s.subscribers[userID] = make(map[*subscriber]struct{})
	}
	s.subscribers[userID][sub] = struct{}{}
	sub.ch <- snap
	total := s.subscriberTotal()
	s.mu.Unlock()

	metrics.UpdateSubscriberCount(total)

	cancel := func() {
		sub.once.Do(func() {
			s.mu.Lock()
			if subs, ok := s.subscribers[userID]; ok {
				delete(subs, sub)
				if len(subs) == 0 {
					delete(s.subscribers, userID)
				}
			}
			close(sub.ch)
			total := s.subscriberTotal()
			s.mu.Unlock()
			metrics.UpdateSubscriberCount(total)
		})
	}
	return sub.ch, cancel, nil
}

// History returns the user's records in display order: ascending by
// timestamp, records without one first.
func (s *SQLiteStore) History(ctx context.Context, userID string) ([]model.Series, error) {
	records, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.SortChronological(records), nil
}

// Count returns the total number of records across all users.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM shot_series WHERE namespace = ?`, s.namespace,
	).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close terminates all subscriptions and releases the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for _, subs := range s.subscribers {
		for sub := range subs {
			sub.once.Do(func() { close(sub.ch) })
		}
	}
	s.subscribers = make(map[string]map[*subscriber]struct{})
	s.mu.Unlock()

	metrics.UpdateSubscriberCount(0)
	return s.db.Close()
}

// publish rebuilds the user's snapshot and fans it out. Slow subscribers
// get the oldest buffered snapshot dropped so the latest always lands.
func (s *SQLiteStore) publish(ctx context.Context, userID string) {
	start := time.Now()
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "snapshot rebuild failed",
			logger.String("user", userID), logger.Error(err))
		return
	}
	metrics.RecordSnapshotRebuildDuration(float64(time.Since(start).Milliseconds()))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for sub := range s.subscribers[userID] {
		select {
		case sub.ch <- snap:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- snap:
			default:
			}
		}
		metrics.RecordSnapshotFanout()
	}
}

// snapshot builds the full record set for a user, already display-sorted.
func (s *SQLiteStore) snapshot(ctx context.Context, userID string) (Snapshot, error) {
	records, err := s.load(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Records: stats.SortChronological(records)}, nil
}

func (s *SQLiteStore) load(ctx context.Context, userID string) ([]model.Series, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, made_shots, observations, timestamp
		 FROM shot_series
		 WHERE namespace = ? AND user_id = ?`,
		s.namespace, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}
	defer rows.Close()

	var records []model.Series
	for rows.Next() {
		var (
			r  model.Series
			ts sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.MadeShots, &r.Observations, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		if ts.Valid {
			r.Timestamp = time.UnixMicro(ts.Int64).UTC()
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read series rows: %w", err)
	}
	return records, nil
}

// subscriberTotal must be called with s.mu held.
func (s *SQLiteStore) subscriberTotal() int {
	total := 0
	for _, subs := range s.subscribers {
		total += len(subs)
	}
	return total
}
