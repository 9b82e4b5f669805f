package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Espalier ASCII art banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Leaf greens fading into bark
	lines := []struct {
		text  string
		color string
	}{
		{"  _____                 _ _           ", "#4ade80"},
		{" | ____|___ _ __   __ _| (_) ___ _ __ ", "#22c55e"},
		{" |  _| / __| '_ \\ / _` | | |/ _ \\ '__|", "#16a34a"},
		{" | |___\\__ \\ |_) | (_| | | |  __/ |   ", "#65a30d"},
		{" |_____|___/ .__/ \\__,_|_|_|\\___|_|   ", "#a16207"},
		{"           |_|                        ", "#92400e"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, out.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
