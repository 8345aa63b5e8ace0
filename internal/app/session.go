// Package app provides the core session service that implements the
// dependencies required by the HTTP API.
//
// A session owns the editable form state, the live store subscription and
// the derived aggregates. Identity is resolved exactly once, before any
// store access; the subscription is released exactly once on Stop.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/swish/internal/adapters/store"
	"github.com/okian/swish/internal/domain/message"
	"github.com/okian/swish/internal/domain/model"
	"github.com/okian/swish/internal/domain/stats"
	"github.com/okian/swish/internal/domain/transcript"
	"github.com/okian/swish/internal/identity"
	"github.com/okian/swish/pkg/logger"
	"github.com/okian/swish/pkg/metrics"
)

// Sender mirrors a submitted series to the spreadsheet webhook.
type Sender interface {
	Send(ctx context.Context, madeShots int, observations string) error
	Enabled() bool
}

// Dictation drives optional voice capture for the observations field.
type Dictation interface {
	Available() bool
	Listening() bool
	Listen(ctx context.Context, onTranscript func(string), onDenied func()) error
}

// State is a read-only snapshot of the session's UI-facing state.
type State struct {
	Loading      bool       `json:"loading"`
	Busy         bool       `json:"busy"`
	View         model.View `json:"view"`
	MadeShots    int        `json:"madeShots"`
	Observations string     `json:"observations"`
	LastMessage  string     `json:"lastMessage,omitempty"`
	UserID       string     `json:"userId,omitempty"`
	Anonymous    bool       `json:"anonymous"`
}

// Session implements the form workflow, view switching and the live read
// model over one resolved identity.
type Session struct {
	mu sync.RWMutex

	// Dependencies
	provider identity.Provider
	store    store.Store
	sink     Sender
	voice    Dictation
	logger   logger.Logger

	// Identity
	ident    identity.Session
	terminal bool // identity never resolved; no data for this session

	// Form state, owned exclusively by the submit workflow
	madeShots    int
	observations string
	lastMessage  string
	busy         bool

	// Read model, owned exclusively by the snapshot loop
	records   []model.Series
	aggregate stats.Aggregate
	loading   bool

	// View state
	view model.View

	// Lifecycle
	started   bool
	cancelSub store.CancelFunc
	loopDone  chan struct{}
}

// New constructs a Session with the given options.
func New(opts ...Option) *Session {
	s := &Session{
		madeShots: model.DefaultMadeShots,
		view:      model.ViewEntry,
		aggregate: stats.Compute(nil),
		loading:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("session")
	}
	if s.sink == nil {
		s.sink = noopSender{}
	}
	return s
}

// noopSender stands in when no webhook endpoint is configured; submissions
// then succeed on the store write alone.
type noopSender struct{}

func (noopSender) Send(context.Context, int, string) error { return nil }
func (noopSender) Enabled() bool                           { return false }

// Start resolves the identity and opens the live subscription. Identity or
// subscription failures are terminal for the session, never retried: the
// loading flag clears and the app serves whatever data it has (none).
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	ident, err := s.provider.Resolve(ctx)
	if err != nil {
		s.logger.Error(ctx, "identity resolution failed", logger.Error(err))
		s.mu.Lock()
		s.loading = false
		s.terminal = true
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.ident = ident
	s.mu.Unlock()
	s.logger.Info(ctx, "identity resolved",
		logger.String("user", ident.UserID),
		logger.Bool("anonymous", ident.Anonymous),
	)

	snapshots, cancel, err := s.store.Subscribe(ctx, ident.UserID)
	if err != nil {
		s.logger.Error(ctx, "store subscription failed", logger.Error(err))
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.cancelSub = cancel
	s.loopDone = make(chan struct{})
	s.mu.Unlock()

	go s.snapshotLoop(ctx, snapshots)
	return nil
}

// Stop releases the subscription exactly once and waits for the snapshot
// loop to drain.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel := s.cancelSub
	done := s.loopDone
	s.cancelSub = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// snapshotLoop applies pushed snapshots in delivery order. Every snapshot
// is a full rebuild of the record set, never an incremental patch.
func (s *Session) snapshotLoop(ctx context.Context, snapshots <-chan store.Snapshot) {
	defer close(s.loopDone)

	for snap := range snapshots {
		agg := stats.Compute(snap.Records)
		s.mu.Lock()
		s.records = snap.Records
		s.aggregate = agg
		s.loading = false
		s.mu.Unlock()

		s.logger.Debug(ctx, "snapshot applied",
			logger.Int("records", agg.SeriesCount),
			logger.String("percentage", agg.Percentage),
		)
	}
}

// SetMadeShots updates the selected count. The selection control only
// offers values in range, so anything else is rejected outright.
func (s *Session) SetMadeShots(n int) error {
	if !model.ValidMadeShots(n) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	s.mu.Lock()
	s.madeShots = n
	s.mu.Unlock()
	return nil
}

// SetObservations replaces the free-text observations.
func (s *Session) SetObservations(text string) {
	s.mu.Lock()
	s.observations = text
	s.mu.Unlock()
}

// AppendTranscript appends a dictated fragment to the observations,
// separated by a single space when text already exists.
func (s *Session) AppendTranscript(fragment string) {
	s.mu.Lock()
	s.observations = transcript.Append(s.observations, fragment)
	s.mu.Unlock()
}

// Submit runs the submit workflow with the current form fields:
// store write, then sink mirror, then the tiered result message. On
// success the form resets to its defaults; on failure the fields are
// retained for a user-initiated retry. The busy flag always clears.
func (s *Session) Submit(ctx context.Context) (string, error) {
	s.mu.Lock()
	madeShots := s.madeShots
	observations := s.observations
	userID := s.ident.UserID
	terminal := s.terminal
	s.busy = true
	s.mu.Unlock()

	finish := func(msg string) {
		s.mu.Lock()
		s.lastMessage = msg
		s.busy = false
		s.mu.Unlock()
	}

	if terminal {
		metrics.RecordSubmissionFailure()
		finish(message.Failure)
		return message.Failure, fmt.Errorf("%w: no identity", ErrSubmitFailed)
	}

	// Store write first; a failure here short-circuits the sink call.
	if _, err := s.store.Append(ctx, userID, madeShots, observations); err != nil {
		s.logger.Error(ctx, "store write failed", logger.Error(err))
		metrics.RecordSubmissionFailure()
		finish(message.Failure)
		return message.Failure, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	if err := s.sink.Send(ctx, madeShots, observations); err != nil {
		s.logger.Error(ctx, "sink mirror failed", logger.Error(err))
		metrics.RecordSubmissionFailure()
		finish(message.Failure)
		return message.Failure, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	msg := message.ForMadeShots(madeShots)
	metrics.RecordSubmission()

	s.mu.Lock()
	s.madeShots = model.DefaultMadeShots
	s.observations = ""
	s.lastMessage = msg
	s.busy = false
	s.mu.Unlock()

	return msg, nil
}

// Dictate runs one voice capture session, appending transcripts to the
// observations. Permission denials surface a user-facing message; other
// recognition errors are silent.
func (s *Session) Dictate(ctx context.Context) error {
	if s.voice == nil || !s.voice.Available() {
		return ErrVoiceUnsupported
	}
	return s.voice.Listen(ctx, s.AppendTranscript, func() {
		s.mu.Lock()
		s.lastMessage = message.MicrophoneDenied
		s.mu.Unlock()
	})
}

// SwitchView selects one of the three page views. Purely local state:
// no network activity, form fields untouched.
func (s *Session) SwitchView(v model.View) error {
	if !model.ValidView(v) {
		return fmt.Errorf("%w: %q", ErrInvalidView, v)
	}
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	return nil
}

// View returns the currently selected page view.
func (s *Session) View() model.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Aggregate returns the derived statistics for the current record set.
func (s *Session) Aggregate(ctx context.Context) stats.Aggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aggregate
}

// History returns the record set in display order.
func (s *Session) History(ctx context.Context) []model.Series {
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()
	return stats.SortChronological(records)
}

// State snapshots the UI-facing session state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Loading:      s.loading,
		Busy:         s.busy,
		View:         s.view,
		MadeShots:    s.madeShots,
		Observations: s.observations,
		LastMessage:  s.lastMessage,
		UserID:       s.ident.UserID,
		Anonymous:    s.ident.Anonymous,
	}
}

// UserID returns the resolved identity's identifier, empty before Start.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ident.UserID
}
