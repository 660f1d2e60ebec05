package pathfind

import "github.com/jerecoder/cave-snake/internal/core"

// Distances returns the 4-directional step distance from start to every cell
// of a w x h grid, -1 where unreachable. A non-free start yields all -1.
func Distances(g Grid, w, h int, start core.Point) []int {
	dist := make([]int, w*h)
	for i := range dist {
		dist[i] = -1
	}
	if !inside(start, w, h) || !g.IsFree(start.X, start.Y) {
		return dist
	}

	dist[start.Y*w+start.X] = 0
	queue := []core.Point{start}
	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		base := dist[cur.Y*w+cur.X]
		for _, d := range dirs4 {
			n := cur.Add(d.X, d.Y)
			if !inside(n, w, h) || !g.IsFree(n.X, n.Y) || dist[n.Y*w+n.X] >= 0 {
				continue
			}
			dist[n.Y*w+n.X] = base + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// Reachable marks the cells of a w x h grid reachable from start.
func Reachable(g Grid, w, h int, start core.Point) []bool {
	dist := Distances(g, w, h, start)
	out := make([]bool, len(dist))
	for i, d := range dist {
		out[i] = d >= 0
	}
	return out
}

// CountFree counts free cells in a w x h grid.
func CountFree(g Grid, w, h int) int {
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if g.IsFree(x, y) {
				n++
			}
		}
	}
	return n
}

func inside(p core.Point, w, h int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}
