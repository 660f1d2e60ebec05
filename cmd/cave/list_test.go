package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jerecoder/cave-snake/internal/registry"
	"github.com/jerecoder/cave-snake/internal/storage"
)

func TestWriteGameList(t *testing.T) {
	games := []registry.GameInfo{
		{ID: "snake", Title: "Cave Snake"},
		{ID: "shooter", Title: "Maze Shooter"},
	}
	stats := map[string]*storage.GameStats{
		"snake": {GameID: "snake", GamesCount: 3, HighScore: 120, BestHeight: 42},
	}

	var buf bytes.Buffer
	writeGameList(&buf, games, stats)
	lines := strings.Split(buf.String(), "\n")

	if !strings.HasPrefix(lines[0], "ID") {
		t.Fatalf("expected header first, got %q", lines[0])
	}
	if f := strings.Fields(lines[1]); f[0] != "snake" || f[len(f)-2] != "120" || f[len(f)-1] != "42" {
		t.Errorf("expected snake row with best 120 and height 42, got %q", lines[1])
	}
	if f := strings.Fields(lines[2]); f[0] != "shooter" || f[len(f)-2] != "-" || f[len(f)-1] != "-" {
		t.Errorf("expected shooter row without runs, got %q", lines[2])
	}
}

func TestWriteGameListEmpty(t *testing.T) {
	var buf bytes.Buffer
	writeGameList(&buf, nil, nil)
	if got := buf.String(); got != "No games registered.\n" {
		t.Errorf("expected empty notice, got %q", got)
	}
}
