package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jerecoder/cave-snake/internal/core"
)

func sendSession(m SessionModel, msgs ...tea.Msg) SessionModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}
	return m
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(Services{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m = sendSession(m, enter)
	if m.active != screenDifficulty || m.gameID != "stub" {
		t.Fatalf("screen %d game %q, expected the difficulty picker for stub", m.active, m.gameID)
	}

	m = sendSession(m, enter)
	if m.active != screenGame || m.gameModel == nil {
		t.Fatalf("screen %d, expected a running game", m.active)
	}
	if !m.gameModel.inSession {
		t.Error("expected the game to return to the menu on back")
	}

	m = sendSession(m, runes("p"), TickMsg{}, runes("b"))
	if m.active != screenMenu || m.gameModel != nil {
		t.Errorf("screen %d, expected the menu after leaving a paused game", m.active)
	}
	if m.quitting {
		t.Error("expected the session to keep running")
	}
}

func TestSessionScoreboardAndBack(t *testing.T) {
	m := NewSessionModel(Services{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})

	m = sendSession(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.active != screenScoreboard {
		t.Fatalf("screen %d, expected the scoreboard", m.active)
	}
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.active != screenMenu {
		t.Fatalf("screen %d, expected the menu after back", m.active)
	}

	// backing out of the difficulty picker also returns to the menu
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.active != screenMenu {
		t.Errorf("screen %d, expected the menu after leaving the picker", m.active)
	}
}

func TestDifficultyPicker(t *testing.T) {
	m := NewDifficultyModel("Cave Snake", 80, 24)
	for _, msg := range []tea.Msg{runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeyEnter}} {
		next, _ := m.Update(msg)
		m = next.(DifficultyModel)
	}
	if got := m.Selected(); got != "fixed" {
		t.Errorf("selected %q, expected fixed", got)
	}
}
