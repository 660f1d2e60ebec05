// Package world holds the cell grids the games play on: the snake's
// append-only Board of generated chunks and the shooter's fixed Level.
package world

// Kind is the type of a grid cell. It never changes after generation.
type Kind uint8

const (
	Free Kind = iota
	Wall1
	Wall2
	Wall3
)

// IsWall reports whether k blocks movement and rays.
func (k Kind) IsWall() bool {
	return k != Free
}

// Variant returns the wall texture index 0..2, or -1 for free cells.
func (k Kind) Variant() int {
	if k == Free {
		return -1
	}
	return int(k - Wall1)
}

func (k Kind) String() string {
	switch k {
	case Free:
		return "free"
	case Wall1:
		return "wall1"
	case Wall2:
		return "wall2"
	case Wall3:
		return "wall3"
	}
	return "unknown"
}
