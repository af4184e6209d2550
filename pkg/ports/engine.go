package ports

import (
	"context"

	"github.com/aretw0/vigor/pkg/domain"
)

// Reducer defines the stateless transition used by adapters that receive the state from the caller.
type Reducer interface {
	// Reduce returns the state that follows state once action has happened.
	// A nil state means the initial state. It returns domain.ErrUnknownAction for values outside the action set.
	Reduce(ctx context.Context, action domain.Action, state *domain.State) (domain.State, error)
}
