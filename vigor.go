package vigor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/vigor/internal/logging"
	"github.com/aretw0/vigor/pkg/domain"
	"github.com/aretw0/vigor/pkg/ports"
	"github.com/aretw0/vigor/pkg/store"
)

// Version is the release of the vigor module and its binaries.
const Version = "0.3.0"

// Reducer is the high-level stateless entry point. It wraps domain.Reduce with
// boundary validation and logging, and is what the adapters use when the caller
// owns the state.
type Reducer struct {
	logger *slog.Logger
}

// Ensure Reducer implements the Reducer port.
var _ ports.Reducer = (*Reducer)(nil)

// Option defines a functional option for configuring the Reducer.
type Option func(*Reducer)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reducer) {
		r.logger = logger
	}
}

// NewReducer creates a stateless reducer.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reduce validates action and state and returns the state that follows state.
// A nil state means domain.NewState(). The caller's state is never modified.
func (r *Reducer) Reduce(ctx context.Context, action domain.Action, state *domain.State) (domain.State, error) {
	if !action.Valid() {
		return domain.State{}, fmt.Errorf("%w: %v", domain.ErrUnknownAction, action)
	}
	if state != nil {
		if err := state.Validate(); err != nil {
			return domain.State{}, err
		}
	}
	if err := ctx.Err(); err != nil {
		return domain.State{}, err
	}

	next := domain.Reduce(action, state)
	r.logger.Debug("Reduced", "action", action.String(), "energy", next.Energy)
	return next, nil
}

// NewStore creates a Store owning domain.NewState() unless overridden by options.
func NewStore(opts ...store.Option) *store.Store {
	return store.New(opts...)
}
