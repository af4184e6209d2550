package ports

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/vigor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDispatcherContract runs a suite of tests to verify that a Dispatcher implementation
// adheres to the defined interface contract. newDispatcher must return a fresh dispatcher
// starting from domain.NewState().
func RunDispatcherContract(t *testing.T, newDispatcher func() Dispatcher) {
	ctx := context.Background()

	t.Run("Initial State", func(t *testing.T) {
		d := newDispatcher()
		assert.Equal(t, domain.NewState(), d.State())
		assert.Zero(t, d.Revision())
	})

	t.Run("Dispatch Sequence", func(t *testing.T) {
		d := newDispatcher()

		for _, a := range []domain.Action{domain.Run, domain.Walk, domain.Sit} {
			_, err := d.Dispatch(ctx, a)
			require.NoError(t, err)
		}

		assert.Equal(t, 40.0, d.State().Energy)
		assert.Equal(t, uint64(3), d.Revision())

		state, rev := d.Snapshot()
		assert.Equal(t, 40.0, state.Energy)
		assert.Equal(t, uint64(3), rev)
	})

	t.Run("Snapshot Isolation", func(t *testing.T) {
		d := newDispatcher()
		snap := d.State()

		_, err := d.Dispatch(ctx, domain.Sit)
		require.NoError(t, err)

		assert.Equal(t, domain.DefaultEnergy, snap.Energy, "previous snapshot must not change")
		assert.Equal(t, 60.0, d.State().Energy)
	})

	t.Run("Unknown Action", func(t *testing.T) {
		d := newDispatcher()
		_, err := d.Dispatch(ctx, domain.Action(0))
		assert.ErrorIs(t, err, domain.ErrUnknownAction)
		assert.Equal(t, domain.NewState(), d.State())
		assert.Zero(t, d.Revision())
	})

	t.Run("Canceled Context", func(t *testing.T) {
		d := newDispatcher()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := d.Dispatch(cctx, domain.Run)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, domain.NewState(), d.State())
	})

	t.Run("Reset", func(t *testing.T) {
		d := newDispatcher()
		_, err := d.Dispatch(ctx, domain.Run)
		require.NoError(t, err)

		s, err := d.Reset(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.NewState(), s)
		assert.Equal(t, domain.NewState(), d.State())
	})

	t.Run("Concurrent Dispatch", func(t *testing.T) {
		d := newDispatcher()
		actions := make([]domain.Action, 0, 90)
		for i := 0; i < 30; i++ {
			actions = append(actions, domain.Run, domain.Walk, domain.Sit)
		}

		var wg sync.WaitGroup
		for _, a := range actions {
			wg.Add(1)
			go func(a domain.Action) {
				defer wg.Done()
				_, err := d.Dispatch(ctx, a)
				assert.NoError(t, err)
			}(a)
		}
		wg.Wait()

		assert.Equal(t, domain.Fold(nil, actions...), d.State())
		assert.Equal(t, uint64(len(actions)), d.Revision())
	})
}
