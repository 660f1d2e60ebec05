// Package pathfind answers grid questions for agents: whether enough of the
// board is still reachable for the snake, and which way a shooter enemy
// should step next.
package pathfind

import "github.com/jerecoder/cave-snake/internal/core"

// Grid is the read-only view the searches need. Out-of-range cells must
// report false.
type Grid interface {
	IsFree(x, y int) bool
}

// Visited is the set of cells the snake has claimed.
type Visited interface {
	Has(p core.Point) bool
}

var dirs4 = [4]core.Point{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// RemainingReachable reports whether at least totalFree-visitedCount
// unvisited cells can be reached from head, walking only through free cells
// that are unvisited (the head itself is allowed). The search stops as soon
// as enough cells are counted.
func RemainingReachable(g Grid, head core.Point, visited Visited, totalFree, visitedCount int) bool {
	remaining := totalFree - visitedCount
	if remaining <= 0 {
		return true
	}
	return flood(g, head, visited, remaining) >= remaining
}

// CountReachableUnvisited counts every unvisited cell reachable from head
// under the same rules as RemainingReachable.
func CountReachableUnvisited(g Grid, head core.Point, visited Visited) int {
	return flood(g, head, visited, -1)
}

// flood counts reachable unvisited cells, stopping at limit when limit > 0.
func flood(g Grid, head core.Point, visited Visited, limit int) int {
	seen := map[core.Point]bool{head: true}
	queue := []core.Point{head}
	count := 0

	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		for _, d := range dirs4 {
			n := cur.Add(d.X, d.Y)
			if !g.IsFree(n.X, n.Y) || seen[n] {
				continue
			}
			if n != head && visited.Has(n) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)

			count++
			if limit > 0 && count >= limit {
				return count
			}
		}
	}
	return count
}

// HasFreeNeighbour reports whether any 4-neighbour of p is free and not
// visited.
func HasFreeNeighbour(g Grid, p core.Point, visited Visited) bool {
	for _, d := range dirs4 {
		n := p.Add(d.X, d.Y)
		if g.IsFree(n.X, n.Y) && !visited.Has(n) {
			return true
		}
	}
	return false
}
