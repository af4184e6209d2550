package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/vigor/pkg/domain"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Step is one transition in a reduction trace.
type Step struct {
	Action domain.Action
	Before domain.State
	After  domain.State
}

// ActionTitle returns the display name of an action ("Run", "Walk", "Sit").
func ActionTitle(a domain.Action) string {
	return cases.Title(language.English).String(a.String())
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// WritePlain writes a trace in a stable line-oriented format suitable for pipes.
func WritePlain(w io.Writer, start domain.State, steps []Step) error {
	if _, err := fmt.Fprintf(w, "%-6s energy=%g\n", "start", start.Energy); err != nil {
		return err
	}
	for _, s := range steps {
		delta := s.After.Energy - s.Before.Energy
		if _, err := fmt.Fprintf(w, "%-6s energy=%g (%+g)\n", s.Action, s.After.Energy, delta); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%-6s energy=%g\n", "final", final(start, steps).Energy)
	return err
}

// Markdown renders a trace as a markdown report.
func Markdown(start domain.State, steps []Step) string {
	var b strings.Builder
	b.WriteString("# Energy report\n\n")
	fmt.Fprintf(&b, "Starting energy: **%g**\n\n", start.Energy)

	if len(steps) > 0 {
		b.WriteString("| # | Action | Energy | Change |\n")
		b.WriteString("|---|--------|--------|--------|\n")
		for i, s := range steps {
			fmt.Fprintf(&b, "| %d | %s | %g | %+g |\n",
				i+1, ActionTitle(s.Action), s.After.Energy, s.After.Energy-s.Before.Energy)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Final energy: **%g**\n", final(start, steps).Energy)
	return b.String()
}

func final(start domain.State, steps []Step) domain.State {
	if len(steps) == 0 {
		return start
	}
	return steps[len(steps)-1].After
}
