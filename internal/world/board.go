package world

import (
	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/gen"
)

// Board is the snake's infinite vertical board. Row 0 is the bottom; chunks
// are appended upward as the player fills the revealed area.
type Board struct {
	seed      uint32
	params    gen.ChunkParams
	addChunks int

	chunks       []*gen.Chunk
	chunkStarts  []int // global path index of each chunk's first cell
	totalFree    int
	totalPathLen int
}

// NewBoard creates a board and reveals params.StartChunks chunks. addChunks
// is how many chunks each expansion reveals (at least one).
func NewBoard(seed uint32, params gen.ChunkParams, addChunks int) *Board {
	b := &Board{
		seed:      seed,
		params:    params,
		addChunks: max(1, addChunks),
	}
	b.RevealMore(params.StartChunks)
	return b
}

// Seed returns the board seed.
func (b *Board) Seed() uint32 { return b.seed }

// Width returns the board width in cells.
func (b *Board) Width() int { return b.params.Width }

// ChunkHeight returns the rows per chunk.
func (b *Board) ChunkHeight() int { return b.params.Height }

// Params returns the chunk parameters the board generates with.
func (b *Board) Params() gen.ChunkParams { return b.params }

// Revealed returns the number of revealed chunks.
func (b *Board) Revealed() int { return len(b.chunks) }

// RevealedHeight returns the number of revealed rows.
func (b *Board) RevealedHeight() int { return len(b.chunks) * b.params.Height }

// TotalFree returns the number of free cells in the revealed area.
func (b *Board) TotalFree() int { return b.totalFree }

// TotalPathLen returns the summed canonical path length of all chunks.
func (b *Board) TotalPathLen() int { return b.totalPathLen }

// Chunk returns the i-th chunk, or nil when it is not revealed.
func (b *Board) Chunk(i int) *gen.Chunk {
	if i < 0 || i >= len(b.chunks) {
		return nil
	}
	return b.chunks[i]
}

// ChunkAt returns the index of the chunk holding row y.
func (b *Board) ChunkAt(y int) int {
	return y / b.params.Height
}

// IsFree reports whether (x, y) is a revealed free cell.
func (b *Board) IsFree(x, y int) bool {
	if x < 0 || x >= b.params.Width || y < 0 || y >= b.RevealedHeight() {
		return false
	}
	return b.chunks[y/b.params.Height].IsFree(x, y)
}

// Key returns the global cell key y*Width+x.
func (b *Board) Key(x, y int) int {
	return y*b.params.Width + x
}

// Cell splits a global key into coordinates.
func (b *Board) Cell(key int) core.Point {
	return core.Point{X: key % b.params.Width, Y: key / b.params.Width}
}

// RevealMore generates and appends n chunks.
func (b *Board) RevealMore(n int) {
	for i := 0; i < n; i++ {
		idx := len(b.chunks)
		c := gen.GenerateChunk(b.seed, idx, idx+1, b.params)
		b.chunks = append(b.chunks, c)
		b.chunkStarts = append(b.chunkStarts, b.totalPathLen)
		b.totalPathLen += len(c.Path)
		b.totalFree += c.FreeCount()
	}
}

// MaybeExpand reveals the next batch of chunks once filled reaches the
// total free count. It reports whether the board grew.
func (b *Board) MaybeExpand(filled int) bool {
	if filled < b.totalFree {
		return false
	}
	b.RevealMore(b.addChunks)
	return true
}

// FreeBefore returns the number of free cells in chunks strictly older
// than chunk.
func (b *Board) FreeBefore(chunk int) int {
	n := 0
	for i := 0; i < chunk && i < len(b.chunks); i++ {
		n += b.chunks[i].FreeCount()
	}
	return n
}

// PathKeyAt maps a global path index to its cell key.
func (b *Board) PathKeyAt(globalIndex int) (int, bool) {
	for i, c := range b.chunks {
		j := globalIndex - b.chunkStarts[i]
		if j >= 0 && j < len(c.Path) {
			return c.Path[j], true
		}
	}
	return 0, false
}

// EntryPoint returns the fixed entry cell of chunk idx: the right edge of
// its bottom row.
func (b *Board) EntryPoint(idx int) core.Point {
	return core.Point{X: b.params.Width - 1, Y: idx * b.params.Height}
}
