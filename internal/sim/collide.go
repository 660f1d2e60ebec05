// Package sim moves and fights the shooter's agents: circle-vs-grid
// collision with sliding, hitscan and projectile tests, and the enemy and
// boss behaviour machines.
package sim

import (
	"math"

	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/raycast"
)

// Grid is the level as seen by the simulation.
type Grid interface {
	raycast.Map
	IsFree(x, y int) bool
}

// MaxSubStep is the longest distance a circle moves between collision
// tests. It must stay below the thinnest wall (one cell).
const MaxSubStep = 0.1

var diag = 1 / math.Sqrt2

// sampleOffsets are the 8 unit directions tested around a circle.
var sampleOffsets = [8]core.Vec2{
	{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
	{X: diag, Y: diag}, {X: diag, Y: -diag}, {X: -diag, Y: diag}, {X: -diag, Y: -diag},
}

// Blocked reports whether a circle at pos touches a wall at any of its 8
// sample points.
func Blocked(g Grid, pos core.Vec2, r float64) bool {
	for _, o := range sampleOffsets {
		c := pos.Add(o.Scale(r)).Cell()
		if !g.IsFree(c.X, c.Y) {
			return true
		}
	}
	return false
}

// MoveCircle moves a circle by delta in sub-steps, sliding along walls:
// each sub-step tries the full move, then X only, then Y only.
func MoveCircle(g Grid, pos, delta core.Vec2, r float64) core.Vec2 {
	dist := delta.Len()
	if dist == 0 {
		return pos
	}
	n := int(math.Ceil(dist / MaxSubStep))
	step := delta.Scale(1 / float64(n))

	for i := 0; i < n; i++ {
		switch {
		case !Blocked(g, pos.Add(step), r):
			pos = pos.Add(step)
		case step.X != 0 && !Blocked(g, core.V(pos.X+step.X, pos.Y), r):
			pos.X += step.X
		case step.Y != 0 && !Blocked(g, core.V(pos.X, pos.Y+step.Y), r):
			pos.Y += step.Y
		}
	}
	return pos
}

// NudgeOut pushes an overlapping circle to the nearest free spot found by
// probing 8 directions at growing radii. It returns false when no spot
// within two cells is free, leaving pos unchanged.
func NudgeOut(g Grid, pos core.Vec2, r float64) (core.Vec2, bool) {
	if !Blocked(g, pos, r) {
		return pos, true
	}
	for dist := 0.05; dist <= 2.0; dist += 0.05 {
		for _, o := range sampleOffsets {
			cand := pos.Add(o.Scale(dist))
			if !Blocked(g, cand, r) {
				return cand, true
			}
		}
	}
	return pos, false
}
