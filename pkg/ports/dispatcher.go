package ports

import (
	"context"

	"github.com/aretw0/vigor/pkg/domain"
)

// Dispatcher owns the current state. Consumers only ever receive snapshots.
type Dispatcher interface {
	// State returns a snapshot of the current state.
	State() domain.State

	// Revision returns the number of transitions applied so far.
	Revision() uint64

	// Snapshot returns the current state and its revision, read together.
	Snapshot() (domain.State, uint64)

	// Dispatch reduces action into the current state and returns the new snapshot.
	Dispatch(ctx context.Context, action domain.Action) (domain.State, error)

	// Reset restores the initial state and returns it.
	Reset(ctx context.Context) (domain.State, error)
}
