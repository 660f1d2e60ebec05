package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/registry"
	"github.com/jerecoder/cave-snake/internal/storage"
)

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

func TestScoreboardLoadsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, r := range []core.RunSummary{
		{GameID: "stub", Score: 300, Level: 2, Height: 20, FillPct: 40, Reason: "BLOCKED", Duration: time.Minute},
		{GameID: "stub", Score: 900, Level: 4, Height: 44, FillPct: 75, Reason: "WALL", Duration: time.Minute},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 120, 30)
	if len(m.runs) != 2 || m.runs[0].Score != 900 {
		t.Fatalf("runs %+v, expected two runs best first", m.runs)
	}
	rows := m.table.Rows()
	if len(rows) != 2 || rows[0][1] != "900" || rows[0][3] != "44" || rows[0][4] != "75%" {
		t.Errorf("rows %v, expected rank, score, level, height, fill", rows)
	}
	if line := m.statsLine(); !strings.Contains(line, "2 runs") || !strings.Contains(line, "avg 600") {
		t.Errorf("stats line %q, expected run count and average", line)
	}
	if !strings.Contains(m.View(), "BEST RUNS - Stub") {
		t.Error("expected the game title in the header")
	}
	if line := m.detailLine(); !strings.Contains(line, "best level") {
		t.Errorf("detail line %q, expected the highlighted run", line)
	}

	// r switches to the latest runs: the 900 run was saved last.
	next, _ := m.Update(runes("r"))
	m = next.(ScoreboardModel)
	if !m.recent || !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("expected the recent order after r")
	}
	if len(m.runs) != 2 {
		t.Errorf("runs = %d, expected both runs in recent order", len(m.runs))
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	tests := []struct {
		name  string
		msg   tea.KeyMsg
		back  bool
		quits bool
	}{
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{"b goes back", runes("b"), true, false},
		{"q quits", runes("q"), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, cmd := NewScoreboardModel(nil, 80, 24).Update(tt.msg)
			m := next.(ScoreboardModel)
			if m.WantsBack() != tt.back || m.IsQuitting() != tt.quits {
				t.Errorf("back %v quit %v, expected %v %v", m.WantsBack(), m.IsQuitting(), tt.back, tt.quits)
			}
			if cmd == nil {
				t.Error("expected the scoreboard program to end")
			}
			if m.View() != "" {
				t.Error("expected an empty view after leaving")
			}
		})
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if len(m.runs) != 0 || m.statsLine() != "" || m.detailLine() != "" {
		t.Error("expected an empty board without a store")
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("expected the empty message")
	}
}
