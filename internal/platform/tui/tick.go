// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// holdTicks is how many ticks a held-input action stays active after its
// key press. Long enough to bridge the gap between terminal key repeats.
func holdTicks(tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return max(1, int(holdDuration*time.Duration(tickRate)/time.Second))
}

const holdDuration = 300 * time.Millisecond
