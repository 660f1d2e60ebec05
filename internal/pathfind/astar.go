package pathfind

import (
	"container/heap"

	"github.com/jerecoder/cave-snake/internal/core"
)

type searchNode struct {
	p      core.Point
	g, f   int
	index  int
	parent *searchNode
}

type openSet []*searchNode

func (q openSet) Len() int { return len(q) }

func (q openSet) Less(i, j int) bool {
	if q[i].f == q[j].f {
		return q[i].g > q[j].g
	}
	return q[i].f < q[j].f
}

func (q openSet) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *openSet) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *openSet) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*q = old[:len(old)-1]
	return n
}

// FirstStep runs a 4-directional A* with a Manhattan heuristic from one cell
// to another and returns only the first cell of the route. It fails when
// the cells are equal, either is blocked, or no route exists.
func FirstStep(g Grid, from, to core.Point) (core.Point, bool) {
	if from == to || !g.IsFree(from.X, from.Y) || !g.IsFree(to.X, to.Y) {
		return core.Point{}, false
	}

	open := &openSet{}
	heap.Push(open, &searchNode{p: from, f: from.Manhattan(to)})
	best := map[core.Point]int{from: 0}
	closed := make(map[core.Point]bool)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchNode)
		if closed[cur.p] {
			continue
		}
		closed[cur.p] = true

		if cur.p == to {
			n := cur
			for n.parent != nil && n.parent.p != from {
				n = n.parent
			}
			return n.p, true
		}

		for _, d := range dirs4 {
			np := cur.p.Add(d.X, d.Y)
			if closed[np] || !g.IsFree(np.X, np.Y) {
				continue
			}
			ng := cur.g + 1
			if prev, ok := best[np]; ok && ng >= prev {
				continue
			}
			best[np] = ng
			heap.Push(open, &searchNode{p: np, g: ng, f: ng + np.Manhattan(to), parent: cur})
		}
	}
	return core.Point{}, false
}

// NextStep returns the centre of the first cell on the shortest route from
// one cell to another, for continuous-space agents to steer toward.
func NextStep(g Grid, from, to core.Point) (core.Vec2, bool) {
	p, ok := FirstStep(g, from, to)
	if !ok {
		return core.Vec2{}, false
	}
	return p.Center(), true
}
