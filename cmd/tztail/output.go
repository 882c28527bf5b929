package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tztail/tztail-go/internal/config"
)

// highlightColor is ANSI red.
const highlightColor = lipgloss.Color("1")

// newHighlighter returns a function that colors converted timestamps, or
// nil when output should stay plain. In auto mode w must be a terminal.
func newHighlighter(w io.Writer, mode string) func(string) string {
	mode, err := config.ParseColor(mode)
	if err != nil || mode == config.ColorNever {
		return nil
	}

	r := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case config.ColorAuto:
		if !isTerminal(w) || r.ColorProfile() == termenv.Ascii {
			return nil
		}
	}

	style := r.NewStyle().
		Foreground(highlightColor).
		TabWidth(lipgloss.NoTabConversion)
	return func(s string) string {
		return style.Render(s)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
