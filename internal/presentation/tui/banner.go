package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the vigor ASCII banner, colored for the detected terminal profile.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`        _                 `, "#34d399"},
		{` __   _(_) __ _  ___  _ __ `, "#10b981"},
		{` \ \ / / |/ _` + "`" + ` |/ _ \| '__|`, "#059669"},
		{`  \ V /| | (_| | (_) | |   `, "#0d9488"},
		{`   \_/ |_|\__, |\___/|_|   `, "#0891b2"},
		{`          |___/            `, "#0284c7"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
