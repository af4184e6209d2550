package vigor_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/aretw0/vigor"
	"github.com/aretw0/vigor/internal/logging"
	"github.com/aretw0/vigor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReducer_Reduce(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	r := vigor.NewReducer(vigor.WithLogger(logging.NewWithFormat(&logs, slog.LevelDebug, logging.FormatText)))

	in := domain.State{Energy: 20}
	out, err := r.Reduce(ctx, domain.Run, &in)
	require.NoError(t, err)
	assert.Equal(t, 5.0, out.Energy)
	assert.Equal(t, 20.0, in.Energy)
	assert.Contains(t, logs.String(), "action=run")

	out, err = r.Reduce(ctx, domain.Sit, nil)
	require.NoError(t, err)
	assert.Equal(t, 60.0, out.Energy)
}

func TestReducer_Rejects(t *testing.T) {
	r := vigor.NewReducer()

	_, err := r.Reduce(context.Background(), domain.Action(0), nil)
	assert.ErrorIs(t, err, domain.ErrUnknownAction)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Reduce(ctx, domain.Walk, nil)
	assert.ErrorIs(t, err, context.Canceled)

	nan := domain.State{Energy: math.NaN()}
	_, err = r.Reduce(context.Background(), domain.Sit, &nan)
	assert.ErrorIs(t, err, domain.ErrInvalidEnergy)

	inf := domain.State{Energy: math.Inf(-1)}
	_, err = r.Reduce(context.Background(), domain.Sit, &inf)
	assert.ErrorIs(t, err, domain.ErrInvalidEnergy)
}

func TestNewStore_Facade(t *testing.T) {
	st := vigor.NewStore()
	for _, a := range []domain.Action{domain.Run, domain.Walk, domain.Sit} {
		_, err := st.Dispatch(context.Background(), a)
		require.NoError(t, err)
	}
	assert.Equal(t, 40.0, st.State().Energy)
}
