package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the stepwise ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct{ text, color string }{
		{"      _                       _          ", "#22d3ee"},
		{"  ___| |_ ___ _ ____      __ (_)___  ___ ", "#38bdf8"},
		{" / __| __/ _ \\ '_ \\ \\ /\\ / / | / __|/ _ \\", "#60a5fa"},
		{" \\__ \\ ||  __/ |_) \\ V  V /  | \\__ \\  __/", "#818cf8"},
		{" |___/\\__\\___| .__/ \\_/\\_/   |_|___/\\___|", "#a78bfa"},
		{"             |_|                          ", "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
