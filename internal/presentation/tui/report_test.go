package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/vigor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSteps() (domain.State, []Step) {
	start := domain.NewState()
	var steps []Step
	current := start
	for _, a := range []domain.Action{domain.Run, domain.Walk, domain.Sit} {
		next := domain.Reduce(a, &current)
		steps = append(steps, Step{Action: a, Before: current, After: next})
		current = next
	}
	return start, steps
}

func TestActionTitle(t *testing.T) {
	assert.Equal(t, "Run", ActionTitle(domain.Run))
	assert.Equal(t, "Walk", ActionTitle(domain.Walk))
	assert.Equal(t, "Sit", ActionTitle(domain.Sit))
}

func TestWritePlain(t *testing.T) {
	start, steps := sampleSteps()
	var buf bytes.Buffer
	require.NoError(t, WritePlain(&buf, start, steps))

	want := "start  energy=50\n" +
		"run    energy=35 (-15)\n" +
		"walk   energy=30 (-5)\n" +
		"sit    energy=40 (+10)\n" +
		"final  energy=40\n"
	assert.Equal(t, want, buf.String())
}

func TestMarkdown(t *testing.T) {
	start, steps := sampleSteps()
	md := Markdown(start, steps)

	assert.Contains(t, md, "Starting energy: **50**")
	assert.Contains(t, md, "| 1 | Run | 35 | -15 |")
	assert.Contains(t, md, "| 3 | Sit | 40 | +10 |")
	assert.Contains(t, md, "Final energy: **40**")

	empty := Markdown(domain.State{Energy: 12.5}, nil)
	assert.NotContains(t, empty, "| # |")
	assert.Contains(t, empty, "Final energy: **12.5**")
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(60)
	require.NoError(t, err)

	out, err := render("# Energy report\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Energy report")
}
