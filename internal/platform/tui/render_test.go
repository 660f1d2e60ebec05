package tui

import (
	"strings"
	"testing"

	"github.com/jerecoder/cave-snake/internal/core"
)

func TestRowRunsGroupByStyle(t *testing.T) {
	s := core.NewScreen(8, 1)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	px := core.Cell{Rune: '▀', TrueColor: true, FG: core.RGB{R: 10}, BG: core.RGB{B: 20}}
	s.SetCell(2, 0, px)
	s.SetCell(3, 0, px)
	other := px
	other.BG = core.RGB{B: 21}
	s.SetCell(4, 0, other)

	runs := rowRuns(s, 0)
	want := []string{"ab", "▀▀", "▀", "   "}
	if len(runs) != len(want) {
		t.Fatalf("runs = %d, expected %d", len(runs), len(want))
	}
	for i, w := range want {
		if runs[i].text != w {
			t.Errorf("run %d = %q, expected %q", i, runs[i].text, w)
		}
	}
	if !runs[1].style.TrueColor || runs[1].style.FG != px.FG {
		t.Errorf("run 1 style %+v, expected the pixel colours", runs[1].style)
	}
}

func TestSameStyle(t *testing.T) {
	tests := []struct {
		name string
		a, b core.Cell
		want bool
	}{
		{"same palette", core.Cell{Color: core.ColorRed}, core.Cell{Rune: 'x', Color: core.ColorRed}, true},
		{"palette differs", core.Cell{Color: core.ColorRed}, core.Cell{Color: core.ColorBlue}, false},
		{"truecolor vs palette", core.Cell{TrueColor: true}, core.Cell{}, false},
		{"truecolor ignores palette", core.Cell{TrueColor: true, Color: core.ColorRed}, core.Cell{TrueColor: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameStyle(tt.a, tt.b); got != tt.want {
				t.Errorf("sameStyle() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawText(0, 0, "CAVE")
	s.DrawTextColor(0, 2, "SNAKE", core.ColorGreen)

	out := RenderScreen(s)
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("newlines = %d, expected 2", n)
	}
	if !strings.Contains(out, "CAVE") || !strings.Contains(out, "SNAKE") {
		t.Errorf("output %q, expected the screen text", out)
	}
}

func TestHex(t *testing.T) {
	if got := string(hex(core.RGB{R: 255, G: 8, B: 0})); got != "#ff0800" {
		t.Errorf("hex = %s, expected #ff0800", got)
	}
}
