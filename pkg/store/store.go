package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/vigor/internal/logging"
	"github.com/aretw0/vigor/pkg/domain"
	"github.com/aretw0/vigor/pkg/ports"
	"github.com/google/uuid"
)

// Store owns the current state and serializes every transition applied to it.
// Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	state    domain.State
	initial  domain.State
	revision uint64

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	clock  func() time.Time
	newID  func() string
}

// Ensure Store implements the Dispatcher port.
var _ ports.Dispatcher = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithInitialState sets the state the store starts from and returns to on Reset.
func WithInitialState(state domain.State) Option {
	return func(s *Store) {
		s.initial = state
	}
}

// WithLogger configures a logger for the Store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithHooks registers lifecycle hooks. Repeated calls chain the hooks in order.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Store) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithClock overrides the time source used to stamp events.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// New creates a Store starting from domain.NewState unless WithInitialState is given.
func New(opts ...Option) *Store {
	s := &Store{
		initial: domain.NewState(),
		logger:  logging.NewNop(), // Default to no-op
		clock:   time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.initial
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Revision returns the number of transitions applied since creation.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Snapshot returns the current state together with its revision, read atomically.
func (s *Store) Snapshot() (domain.State, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.revision
}

// Dispatch applies action to the current state and returns the resulting snapshot.
// It fails with domain.ErrUnknownAction for values outside the action set and with
// the context error if ctx is already done; in both cases the state is left untouched.
func (s *Store) Dispatch(ctx context.Context, action domain.Action) (domain.State, error) {
	if !action.Valid() {
		return domain.State{}, fmt.Errorf("%w: %v", domain.ErrUnknownAction, action)
	}
	if err := ctx.Err(); err != nil {
		return domain.State{}, err
	}

	s.mu.Lock()
	before := s.state
	after := domain.Reduce(action, &before)
	s.state = after
	s.revision++
	rev := s.revision
	s.mu.Unlock()

	s.logger.Debug("Action dispatched",
		"action", action.String(),
		"energy", after.Energy,
		"revision", rev,
	)

	if s.hooks.OnDispatch != nil {
		s.hooks.OnDispatch(ctx, &domain.DispatchEvent{
			EventBase: s.eventBase(domain.EventDispatch, rev),
			Action:    action,
			Before:    before,
			After:     after,
		})
	}

	return after, nil
}

// Reset restores the initial state. It counts as a transition.
func (s *Store) Reset(ctx context.Context) (domain.State, error) {
	if err := ctx.Err(); err != nil {
		return domain.State{}, err
	}

	s.mu.Lock()
	before := s.state
	s.state = s.initial
	s.revision++
	after, rev := s.state, s.revision
	s.mu.Unlock()

	s.logger.Debug("Store reset", "energy", after.Energy, "revision", rev)

	if s.hooks.OnReset != nil {
		s.hooks.OnReset(ctx, &domain.ResetEvent{
			EventBase: s.eventBase(domain.EventReset, rev),
			Before:    before,
			After:     after,
		})
	}

	return after, nil
}

func (s *Store) eventBase(typ domain.EventType, rev uint64) domain.EventBase {
	return domain.EventBase{
		ID:        s.newID(),
		Timestamp: s.clock(),
		Type:      typ,
		Revision:  rev,
	}
}
