package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/vigor"
	"github.com/aretw0/vigor/internal/presentation/tui"
	"github.com/aretw0/vigor/pkg/domain"
)

// Output formats accepted by RunReduce.
const (
	FormatAuto     = "auto"
	FormatPlain    = "plain"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ReduceOptions holds the inputs of the reduce command.
type ReduceOptions struct {
	// Start is the state the actions are applied to.
	Start domain.State

	// Format is one of the Format* constants. FormatAuto picks markdown on a terminal and plain otherwise.
	Format string

	// Banner prints the banner before a markdown report.
	Banner bool

	Out io.Writer
}

// ParseActions resolves every argument, failing on the first unknown one.
func ParseActions(args []string) ([]domain.Action, error) {
	actions := make([]domain.Action, 0, len(args))
	for _, arg := range args {
		a, err := domain.ParseAction(arg)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Trace reduces actions from start and records every step.
func Trace(ctx context.Context, reducer *vigor.Reducer, start domain.State, actions []domain.Action) ([]tui.Step, error) {
	steps := make([]tui.Step, 0, len(actions))
	current := start
	for _, a := range actions {
		next, err := reducer.Reduce(ctx, a, &current)
		if err != nil {
			return nil, err
		}
		steps = append(steps, tui.Step{Action: a, Before: current, After: next})
		current = next
	}
	return steps, nil
}

// RunReduce folds the actions named in args over opts.Start and prints the result.
func RunReduce(ctx context.Context, reducer *vigor.Reducer, opts ReduceOptions, args []string) error {
	if err := opts.Start.Validate(); err != nil {
		return fmt.Errorf("invalid starting state: %w", err)
	}

	actions, err := ParseActions(args)
	if err != nil {
		return err
	}

	steps, err := Trace(ctx, reducer, opts.Start, actions)
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" || format == FormatAuto {
		format = FormatPlain
		if tui.IsTerminal(opts.Out) {
			format = FormatMarkdown
		}
	}

	switch format {
	case FormatJSON:
		final := opts.Start
		if len(steps) > 0 {
			final = steps[len(steps)-1].After
		}
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(final)
	case FormatPlain:
		return tui.WritePlain(opts.Out, opts.Start, steps)
	case FormatMarkdown:
		render, err := tui.NewRenderer(0)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		out, err := render(tui.Markdown(opts.Start, steps))
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		if opts.Banner {
			tui.PrintBanner(opts.Out, vigor.Version)
		}
		_, err = io.WriteString(opts.Out, out)
		return err
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}
