// Package gen builds levels: vertical snake chunks that are solvable by
// construction, and full rectangular mazes for the first-person floors.
package gen

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jerecoder/cave-snake/internal/rng"
)

// ChunkParams are the board constants shared by every chunk of a run.
type ChunkParams struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"chunk_height"` // rows per chunk, must be even
	StartChunks     int     `yaml:"start_chunks"`
	MaxRowShift     int     `yaml:"max_row_shift"`
	LongSweepChance float64 `yaml:"long_sweep_chance"`
}

// DefaultChunkParams returns the classic 25-wide, 12-row board.
func DefaultChunkParams() ChunkParams {
	return ChunkParams{
		Width:           25,
		Height:          12,
		StartChunks:     1,
		MaxRowShift:     3,
		LongSweepChance: 0.14,
	}
}

// ErrInvalidParams is returned by Validate for impossible board shapes.
var ErrInvalidParams = errors.New("gen: invalid chunk params")

// Validate rejects parameters the walker cannot honour.
func (p ChunkParams) Validate() error {
	switch {
	case p.Width < 5:
		return fmt.Errorf("%w: width %d < 5", ErrInvalidParams, p.Width)
	case p.Height < 4 || p.Height%2 != 0:
		return fmt.Errorf("%w: chunk height %d must be even and >= 4", ErrInvalidParams, p.Height)
	case p.StartChunks < 1:
		return fmt.Errorf("%w: start chunks %d < 1", ErrInvalidParams, p.StartChunks)
	case p.MaxRowShift < 1:
		return fmt.Errorf("%w: max row shift %d < 1", ErrInvalidParams, p.MaxRowShift)
	case p.LongSweepChance < 0 || p.LongSweepChance > 1:
		return fmt.Errorf("%w: long sweep chance %.2f outside [0,1]", ErrInvalidParams, p.LongSweepChance)
	}
	return nil
}

// TurnDifficulty ramps from 0 at the starting chunks to 1 fourteen chunks
// later.
func TurnDifficulty(chunksLoaded, startChunks int) float64 {
	d := float64(chunksLoaded-startChunks) / 14
	return math.Max(0, math.Min(1, d))
}

// Tuning holds the walker probabilities derived from a turn difficulty.
type Tuning struct {
	PairChance      float64 // chance of a two-row segment
	DipChance       float64 // chance of a dip inside a two-row segment
	RequiredDips    int
	ShiftMax        int // largest random lateral shift
	ZigzagBias      float64
	ForcedReversals int
	EdgeSweepChance float64
}

// TuningFor maps a turn difficulty in [0,1] to walker probabilities.
func TuningFor(d float64, p ChunkParams) Tuning {
	return Tuning{
		PairChance:      0.3 + 0.6*d,
		DipChance:       0.35 + 0.6*d,
		RequiredDips:    int(math.Floor(d * 4)),
		ShiftMax:        max(1, int(math.Floor(float64(p.MaxRowShift)+2-3*d+0.5))),
		ZigzagBias:      0.15 + 0.75*d,
		ForcedReversals: int(math.Floor(d * 8)),
		EdgeSweepChance: math.Max(0.03, p.LongSweepChance*(1-0.75*d)),
	}
}

// Chunk is one immutable horizontal strip of the snake board.
type Chunk struct {
	Index  int
	YBase  int
	Width  int
	Height int
	// Path lists global cell keys (y*Width+x) in walk order. Every free cell
	// appears exactly once.
	Path []int

	free []bool // local bitmap, (y-YBase)*Width + x
}

// Contains reports whether global row y belongs to this chunk.
func (c *Chunk) Contains(y int) bool {
	return y >= c.YBase && y < c.YBase+c.Height
}

// IsFree reports whether the global cell (x, y) is free in this chunk.
func (c *Chunk) IsFree(x, y int) bool {
	if x < 0 || x >= c.Width || !c.Contains(y) {
		return false
	}
	return c.free[(y-c.YBase)*c.Width+x]
}

// FreeCount returns the number of free cells.
func (c *Chunk) FreeCount() int {
	return len(c.Path)
}

// ForEachFree calls fn for every free cell in row-major order.
func (c *Chunk) ForEachFree(fn func(x, y int)) {
	for i, ok := range c.free {
		if ok {
			fn(i%c.Width, c.YBase+i/c.Width)
		}
	}
}

// Lines renders the chunk top row first: '.' free, '#' wall.
func (c *Chunk) Lines() []string {
	lines := make([]string, 0, c.Height)
	for ly := c.Height - 1; ly >= 0; ly-- {
		var b strings.Builder
		for x := 0; x < c.Width; x++ {
			if c.free[ly*c.Width+x] {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

// GenerateChunk builds chunk idx of the board seeded with seed.
// chunksLoaded is the number of chunks revealed once this one is added and
// drives the difficulty ramp.
//
// The walk enters at the right edge of the bottom row, only ever moves up or
// sideways, and leaves at the right edge of the top row, so the strip is
// solvable by construction.
func GenerateChunk(seed uint32, idx, chunksLoaded int, p ChunkParams) *Chunk {
	if chunksLoaded <= 0 {
		chunksLoaded = 1
	}
	w := &walker{
		r: rng.New(rng.Mix(seed, idx)),
		p: p,
		t: TuningFor(TurnDifficulty(chunksLoaded, p.StartChunks), p),
		c: &Chunk{
			Index:  idx,
			YBase:  idx * p.Height,
			Width:  p.Width,
			Height: p.Height,
			free:   make([]bool, p.Width*p.Height),
		},
	}
	w.walk()
	return w.c
}

type walker struct {
	r *rng.Rand
	p ChunkParams
	t Tuning
	c *Chunk
}

func (w *walker) add(x, y int) {
	i := (y-w.c.YBase)*w.c.Width + x
	if w.c.free[i] {
		return
	}
	w.c.free[i] = true
	w.c.Path = append(w.c.Path, y*w.c.Width+x)
}

func (w *walker) clampX(x int) int {
	return max(0, min(w.p.Width-1, x))
}

// pickTarget chooses the column the next segment walks to. The result never
// equals cur unless clamping at an edge forces it.
func (w *walker) pickTarget(cur int, longSweep bool, preferred int, forcePreferred bool) int {
	last := w.p.Width - 1
	var target int
	switch {
	case !longSweep && preferred != 0 && (forcePreferred || w.r.Float() < w.t.ZigzagBias):
		span := 1 + w.r.Intn(w.t.ShiftMax)
		target = w.clampX(cur + preferred*span)
	case w.r.Float() < w.t.EdgeSweepChance:
		if w.r.Float() < 0.5 {
			target = 0
		} else {
			target = last
		}
	default:
		span := 1 + w.r.Intn(w.t.ShiftMax)
		dir := 1
		if w.r.Float() < 0.5 {
			dir = -1
		}
		target = w.clampX(cur + dir*span)
	}

	if target == cur {
		if cur < w.p.Width/2 {
			target = min(last, cur+1)
		} else {
			target = max(0, cur-1)
		}
	}

	if forcePreferred && preferred != 0 {
		actual := -1
		if target > cur {
			actual = 1
		}
		if actual != preferred {
			span := 1
			if longSweep {
				span = 2
			}
			target = w.clampX(cur + preferred*span)
		}
	}

	if longSweep && abs(target-cur) < 2 {
		switch {
		case cur <= 1:
			target = min(last, cur+2)
		case cur >= last-1:
			target = max(0, cur-2)
		case w.r.Float() < 0.5:
			target = cur - 2
		default:
			target = cur + 2
		}
	}
	return target
}

func (w *walker) walk() {
	h := w.p.Height
	yBase := w.c.YBase
	x, y := w.p.Width-1, yBase
	downMoves := 0
	lastDir := 0
	reversals := 0
	w.add(x, y)

	for y < yBase+h-1 {
		canPair := y-yBase <= h-3
		needDips := downMoves < w.t.RequiredDips
		pair := canPair && (needDips || w.r.Float() < w.t.PairChance)
		forceReversal := lastDir != 0 && reversals < w.t.ForcedReversals
		target := w.pickTarget(x, pair && needDips, -lastDir, forceReversal)
		segDir := sign(target - x)

		if pair {
			for x != target {
				dir := sign(target - x)
				if abs(target-x) >= 2 && (downMoves < w.t.RequiredDips || w.r.Float() < w.t.DipChance) {
					// dip: drop a row for one column and come back up
					w.add(x, y+1)
					w.add(x+dir, y+1)
					w.add(x+dir, y)
					w.add(x+2*dir, y)
					x += 2 * dir
					downMoves++
				} else {
					x += dir
					w.add(x, y)
				}
			}
		} else {
			for x != target {
				x += sign(target - x)
				w.add(x, y)
			}
		}

		if segDir != 0 {
			if lastDir != 0 && segDir != lastDir {
				reversals++
			}
			lastDir = segDir
		}

		if pair {
			w.add(x, y+1)
			y += 2
		} else {
			y++
		}
		w.add(x, y)
	}

	for x != w.p.Width-1 {
		x++
		w.add(x, y)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
