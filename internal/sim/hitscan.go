package sim

import (
	"math"

	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/raycast"
)

// Entity is what a shot can hit.
type Entity interface {
	Position() core.Vec2
	Radius() float64
	Alive() bool
	// TakeDamage applies n points and reports whether it was fatal.
	TakeDamage(n int) bool
}

// RayCircle returns the distance along the unit ray at which it enters the
// circle, 0 when the origin is already inside.
func RayCircle(origin, dir, centre core.Vec2, r float64) (float64, bool) {
	m := origin.Sub(centre)
	b := m.Dot(dir)
	c := m.Dot(m) - r*r
	if c > 0 && b > 0 {
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		t = 0
	}
	return t, true
}

// Shot is the outcome of a hitscan.
type Shot struct {
	Target Entity // nil when the wall was nearest
	Index  int    // index into targets, -1 for walls
	Dist   float64
	Point  core.Vec2 // impact point, used for sparks on a miss
	Wall   raycast.Hit
}

// Hit reports whether an entity was struck.
func (s Shot) Hit() bool {
	return s.Target != nil
}

// Hitscan fires an instant ray. The nearest live target in front of the
// first wall wins; otherwise the shot reports the wall impact.
func Hitscan(g Grid, origin, dir core.Vec2, targets []Entity, maxSteps int) Shot {
	wall := raycast.Cast(g, origin, dir, maxSteps)
	shot := Shot{Index: -1, Dist: wall.Dist, Wall: wall}

	for i, t := range targets {
		if t == nil || !t.Alive() {
			continue
		}
		d, ok := RayCircle(origin, dir, t.Position(), t.Radius())
		if ok && d < shot.Dist {
			shot.Dist = d
			shot.Target = t
			shot.Index = i
		}
	}

	if !math.IsInf(shot.Dist, 1) {
		shot.Point = origin.Add(dir.Scale(shot.Dist))
	}
	return shot
}
