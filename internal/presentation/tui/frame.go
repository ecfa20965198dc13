// Package tui renders steps for a terminal: coloured bars for arrays, a grid
// for DP tables and a node list for graphs.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultWidth is used when the terminal size cannot be detected.
const DefaultWidth = 80

// TerminalWidth returns the width of stdout, or DefaultWidth when stdout is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// FrameRenderer turns a step into a block of terminal text.
type FrameRenderer struct {
	profile    termenv.Profile
	width      int
	barHeight  int
	cellWidth  int
	showLegend bool
}

// FrameOption configures a FrameRenderer.
type FrameOption func(*FrameRenderer)

// WithProfile overrides the detected colour profile. termenv.Ascii disables colour.
func WithProfile(p termenv.Profile) FrameOption {
	return func(r *FrameRenderer) { r.profile = p }
}

// WithWidth sets the available columns.
func WithWidth(w int) FrameOption {
	return func(r *FrameRenderer) {
		if w > 0 {
			r.width = w
		}
	}
}

// WithBarHeight sets the number of rows used for array bars.
func WithBarHeight(h int) FrameOption {
	return func(r *FrameRenderer) {
		if h > 0 {
			r.barHeight = h
		}
	}
}

// WithLegend appends the colour key under each frame.
func WithLegend(show bool) FrameOption {
	return func(r *FrameRenderer) { r.showLegend = show }
}

// NewFrameRenderer creates a renderer for the current terminal.
func NewFrameRenderer(opts ...FrameOption) *FrameRenderer {
	r := &FrameRenderer{
		profile:   termenv.ColorProfile(),
		width:     DefaultWidth,
		barHeight: 12,
		cellWidth: 4,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *FrameRenderer) paint(s, hex string) string {
	return r.profile.String(s).Foreground(r.profile.Color(hex)).String()
}

// Render draws one step for algorithm id with the playback status line.
func (r *FrameRenderer) Render(id domain.AlgorithmID, step domain.Step, state domain.PlaybackState) string {
	var sb strings.Builder

	switch {
	case step.Array != nil:
		r.renderBars(&sb, step.Array)
	case step.Graph != nil:
		r.renderGraph(&sb, step.Graph)
	case step.Table != nil:
		r.renderTable(&sb, id, step.Table)
	}

	sb.WriteString("\n")
	sb.WriteString(step.Operation)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Step %d/%d · comparisons %d · swaps %d · %s\n",
		state.Cursor, state.Total, step.Comparisons, step.Swaps, state.Status))

	if r.showLegend {
		var parts []string
		for _, e := range Legend(id) {
			parts = append(parts, r.paint("■", e.Color)+" "+e.Label)
		}
		sb.WriteString(strings.Join(parts, "  "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderBars draws one column per element, scaled to the largest value.
// When the array is wider than the terminal, columns are one character wide
// with no gap.
func (r *FrameRenderer) renderBars(sb *strings.Builder, arr []domain.Element) {
	if len(arr) == 0 {
		sb.WriteString("(empty)\n")
		return
	}
	maxVal := 1
	for _, el := range arr {
		maxVal = max(maxVal, el.Value)
	}
	gap := " "
	if len(arr)*2 > r.width {
		gap = ""
	}

	heights := make([]int, len(arr))
	for i, el := range arr {
		h := el.Value * r.barHeight / maxVal
		if el.Value > 0 && h == 0 {
			h = 1
		}
		heights[i] = h
	}

	for row := r.barHeight; row >= 1; row-- {
		var line strings.Builder
		for i, el := range arr {
			if heights[i] >= row {
				line.WriteString(r.paint("█", elementColors[el.State]))
			} else {
				line.WriteString(" ")
			}
			line.WriteString(gap)
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}

	if gap != "" && len(arr) <= 20 {
		var values []string
		for _, el := range arr {
			values = append(values, strconv.Itoa(el.Value))
		}
		sb.WriteString(strings.Join(values, " "))
		sb.WriteString("\n")
	}
}

func (r *FrameRenderer) renderGraph(sb *strings.Builder, g *domain.GraphSnapshot) {
	for _, n := range g.Nodes {
		label := fmt.Sprintf("(%s)", n.ID)
		sb.WriteString(r.paint(label, nodeColors[n.State]))
		sb.WriteString(" ")
		sb.WriteString(string(n.State))
		if d, ok := g.Distances[n.ID]; ok {
			sb.WriteString(fmt.Sprintf(" d=%s", strconv.FormatFloat(d, 'f', -1, 64)))
		}
		var links []string
		for _, e := range g.Edges {
			switch n.ID {
			case e.From:
				links = append(links, fmt.Sprintf("%s:%g", e.To, e.Weight))
			case e.To:
				links = append(links, fmt.Sprintf("%s:%g", e.From, e.Weight))
			}
		}
		if len(links) > 0 {
			sb.WriteString("  — ")
			sb.WriteString(strings.Join(links, " "))
		}
		sb.WriteString("\n")
	}
}

func (r *FrameRenderer) renderTable(sb *strings.Builder, id domain.AlgorithmID, t domain.Table) {
	pad := func(s string) string {
		if len(s) >= r.cellWidth {
			return s
		}
		return strings.Repeat(" ", r.cellWidth-len(s)) + s
	}

	// Column header: indexes, or capacities for knapsack.
	sb.WriteString(pad(""))
	for j := 0; j < t.Cols(); j++ {
		sb.WriteString(pad(strconv.Itoa(j)))
	}
	sb.WriteString("\n")

	for i, row := range t {
		label := strconv.Itoa(i)
		if id == domain.AlgorithmFibonacci {
			label = "F"
		}
		sb.WriteString(pad(label))
		for _, c := range row {
			text := "·"
			if c.Value != nil {
				text = strconv.Itoa(*c.Value)
			}
			// "·" is one column but three bytes; pad by display width.
			padded := strings.Repeat(" ", max(0, r.cellWidth-len([]rune(text)))) + text
			sb.WriteString(r.paint(padded, cellColors[c.State]))
		}
		sb.WriteString("\n")
	}
}
