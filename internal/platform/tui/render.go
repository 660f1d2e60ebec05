package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jerecoder/cave-snake/internal/core"
)

// cellRun is a stretch of one row whose cells share a style.
type cellRun struct {
	style core.Cell // Rune unused
	text  string
}

// sameStyle reports whether two cells render with the same escape codes.
func sameStyle(a, b core.Cell) bool {
	if a.TrueColor != b.TrueColor {
		return false
	}
	if a.TrueColor {
		return a.FG == b.FG && a.BG == b.BG
	}
	return a.Color == b.Color
}

// rowRuns groups row y of s into same-style runs.
func rowRuns(s *core.Screen, y int) []cellRun {
	var runs []cellRun
	x := 0
	for x < s.Width() {
		start := s.GetCell(x, y)
		var text strings.Builder
		for x < s.Width() {
			cell := s.GetCell(x, y)
			if !sameStyle(cell, start) {
				break
			}
			text.WriteRune(cell.Rune)
			x++
		}
		start.Rune = 0
		runs = append(runs, cellRun{style: start, text: text.String()})
	}
	return runs
}

func hex(c core.RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// styleFor returns the lipgloss style for a run.
func styleFor(c core.Cell) lipgloss.Style {
	if c.TrueColor {
		return lipgloss.NewStyle().Foreground(hex(c.FG)).Background(hex(c.BG))
	}
	if code := c.Color.ANSI(); code != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return lipgloss.NewStyle()
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape
// sequences. Pixel cells carry their own truecolor foreground and
// background; the terminal profile decides how far they degrade.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range rowRuns(s, y) {
			sb.WriteString(styleFor(run.style).Render(run.text))
		}
	}
	return sb.String()
}
