package gen

import (
	"fmt"

	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/rng"
)

// Maze glyphs. Walls carry a texture variant digit.
const (
	GlyphFree  = '.'
	GlyphWall1 = '1'
	GlyphWall2 = '2'
	GlyphWall3 = '3'
)

// cellPitch is the distance between logical cell origins: a 2x2 open block
// plus one wall.
const cellPitch = 3

// MazeParams describes a full maze floor.
type MazeParams struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Loops  int `yaml:"-"` // extra openings on top of the spanning tree
}

// Validate checks that at least one logical cell fits.
func (p MazeParams) Validate() error {
	if p.Width < 4 || p.Height < 4 {
		return fmt.Errorf("%w: maze %dx%d is smaller than 4x4", ErrInvalidParams, p.Width, p.Height)
	}
	if p.Loops < 0 {
		return fmt.Errorf("%w: negative loop count %d", ErrInvalidParams, p.Loops)
	}
	return nil
}

// LogicalSize returns the number of logical cells across and down.
func (p MazeParams) LogicalSize() (int, int) {
	return (p.Width - 1) / cellPitch, (p.Height - 1) / cellPitch
}

// LoopsForFloor returns how many extra openings a floor gets. Deeper floors
// get fewer, so they play more like a perfect maze.
func LoopsForFloor(floor, logicalCells int) int {
	return max(0, logicalCells/6-2*floor)
}

// Maze is a generated floor.
type Maze struct {
	Width    int
	Height   int
	Lines    []string // row 0 first
	Openings int      // logical edges carved: tree edges plus loops
	Spawn    core.Point
}

type mazeEdge struct {
	a, b int // logical cell indices, b is right of or below a
}

// GenerateMaze carves a perfect maze with a randomized depth-first search
// from logical cell (0,0), then opens p.Loops extra walls between adjacent
// cells that the tree left separated.
func GenerateMaze(r *rng.Rand, p MazeParams) *Maze {
	cw, ch := p.LogicalSize()
	grid := make([][]byte, p.Height)
	for y := range grid {
		grid[y] = make([]byte, p.Width)
		for x := range grid[y] {
			grid[y][x] = wallGlyph(r)
		}
	}

	open := func(x, y int) {
		if x > 0 && y > 0 && x < p.Width-1 && y < p.Height-1 {
			grid[y][x] = GlyphFree
		}
	}
	openBlock := func(c int) {
		ox, oy := 1+(c%cw)*cellPitch, 1+(c/cw)*cellPitch
		open(ox, oy)
		open(ox+1, oy)
		open(ox, oy+1)
		open(ox+1, oy+1)
	}
	// openWall removes the wall strip between a and its right or lower neighbour.
	openWall := func(e mazeEdge) {
		ax, ay := 1+(e.a%cw)*cellPitch, 1+(e.a/cw)*cellPitch
		if e.b == e.a+1 {
			open(ax+2, ay)
			open(ax+2, ay+1)
		} else {
			open(ax, ay+2)
			open(ax+1, ay+2)
		}
	}

	m := &Maze{Width: p.Width, Height: p.Height, Spawn: core.Point{X: 1, Y: 1}}

	if cw > 0 && ch > 0 {
		n := cw * ch
		seen := make([]bool, n)
		joined := make(map[mazeEdge]bool, n)
		stack := []int{0}
		seen[0] = true
		openBlock(0)

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			cx, cy := cur%cw, cur/cw

			var next [4]int
			k := 0
			if cx > 0 && !seen[cur-1] {
				next[k] = cur - 1
				k++
			}
			if cx < cw-1 && !seen[cur+1] {
				next[k] = cur + 1
				k++
			}
			if cy > 0 && !seen[cur-cw] {
				next[k] = cur - cw
				k++
			}
			if cy < ch-1 && !seen[cur+cw] {
				next[k] = cur + cw
				k++
			}
			if k == 0 {
				stack = stack[:len(stack)-1]
				continue
			}

			nb := next[r.Intn(k)]
			e := mazeEdge{a: min(cur, nb), b: max(cur, nb)}
			joined[e] = true
			openWall(e)
			openBlock(nb)
			seen[nb] = true
			m.Openings++
			stack = append(stack, nb)
		}

		var spare []mazeEdge
		for c := 0; c < n; c++ {
			if c%cw < cw-1 {
				if e := (mazeEdge{a: c, b: c + 1}); !joined[e] {
					spare = append(spare, e)
				}
			}
			if c/cw < ch-1 {
				if e := (mazeEdge{a: c, b: c + cw}); !joined[e] {
					spare = append(spare, e)
				}
			}
		}
		r.Shuffle(len(spare), func(i, j int) { spare[i], spare[j] = spare[j], spare[i] })
		for _, e := range spare[:min(p.Loops, len(spare))] {
			openWall(e)
			m.Openings++
		}
	}

	// spawn pocket
	for y := 1; y <= 2; y++ {
		for x := 1; x <= 2; x++ {
			open(x, y)
		}
	}

	m.Lines = make([]string, p.Height)
	for y, row := range grid {
		m.Lines[y] = string(row)
	}
	return m
}

func wallGlyph(r *rng.Rand) byte {
	return byte(GlyphWall1 + r.Intn(3))
}
