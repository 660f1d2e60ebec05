package world

import (
	"errors"
	"fmt"

	"github.com/jerecoder/cave-snake/internal/core"
)

// ErrBadLevel is returned by Load for malformed level text.
var ErrBadLevel = errors.New("world: malformed level")

// Level is a fixed-size floor for the first-person games. Row 0 is the first
// line of the generator output.
type Level struct {
	w, h  int
	cells []Kind
}

// Width returns the level width.
func (l *Level) Width() int { return l.w }

// Height returns the level height.
func (l *Level) Height() int { return l.h }

// Load replaces the grid with the given lines: '.' (or ' ') free, '1'..'3'
// wall variants, '#' wall variant 1. The previous grid is kept on error.
func (l *Level) Load(lines []string) error {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return fmt.Errorf("%w: empty", ErrBadLevel)
	}
	w, h := len(lines[0]), len(lines)
	cells := make([]Kind, 0, w*h)
	for y, line := range lines {
		if len(line) != w {
			return fmt.Errorf("%w: row %d has width %d, expected %d", ErrBadLevel, y, len(line), w)
		}
		for x := 0; x < w; x++ {
			switch c := line[x]; c {
			case '.', ' ':
				cells = append(cells, Free)
			case '1', '#':
				cells = append(cells, Wall1)
			case '2':
				cells = append(cells, Wall2)
			case '3':
				cells = append(cells, Wall3)
			default:
				return fmt.Errorf("%w: unknown glyph %q at (%d,%d)", ErrBadLevel, c, x, y)
			}
		}
	}
	l.w, l.h, l.cells = w, h, cells
	return nil
}

// KindAt returns the cell kind, Wall1 outside the level.
func (l *Level) KindAt(x, y int) Kind {
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return Wall1
	}
	return l.cells[y*l.w+x]
}

// IsFree reports whether (x, y) is inside the level and free.
func (l *Level) IsFree(x, y int) bool {
	return l.KindAt(x, y) == Free
}

// FreeCells returns every free cell in row-major order.
func (l *Level) FreeCells() []core.Point {
	var out []core.Point
	for i, k := range l.cells {
		if k == Free {
			out = append(out, core.Point{X: i % l.w, Y: i / l.w})
		}
	}
	return out
}
