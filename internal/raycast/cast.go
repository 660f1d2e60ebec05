// Package raycast renders a first-person view of a grid level into an RGBA
// framebuffer: one DDA ray per column, textured and shaded walls,
// perspective floor and ceiling, and depth-tested billboards.
package raycast

import (
	"math"

	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/world"
)

// Map is the grid a ray travels through. Out-of-range cells must be walls.
type Map interface {
	KindAt(x, y int) world.Kind
}

// Side is the grid axis a ray crossed when it hit a wall.
type Side uint8

const (
	SideX Side = iota // crossed a vertical grid line (moving along X)
	SideY             // crossed a horizontal grid line (moving along Y)
)

// Hit is the result of one cast.
type Hit struct {
	Dist float64 // along the unit ray, +Inf when nothing was hit
	Side Side
	U    float64 // fractional position along the wall face, [0,1)
	Cell core.Point
	Kind world.Kind
	OK   bool
}

// Point returns the world position of the hit.
func (h Hit) Point(origin, dir core.Vec2) core.Vec2 {
	return origin.Add(dir.Scale(h.Dist))
}

// Cast walks the grid from origin along the unit vector dir with a DDA and
// stops at the first wall, or after maxSteps cell crossings. The origin
// cell itself is never tested.
func Cast(m Map, origin, dir core.Vec2, maxSteps int) Hit {
	cx, cy := int(math.Floor(origin.X)), int(math.Floor(origin.Y))

	deltaX, deltaY := math.Inf(1), math.Inf(1)
	if dir.X != 0 {
		deltaX = math.Abs(1 / dir.X)
	}
	if dir.Y != 0 {
		deltaY = math.Abs(1 / dir.Y)
	}

	stepX, stepY := 1, 1
	var sideX, sideY float64
	if dir.X < 0 {
		stepX = -1
		sideX = (origin.X - float64(cx)) * deltaX
	} else {
		sideX = (float64(cx) + 1 - origin.X) * deltaX
	}
	if dir.Y < 0 {
		stepY = -1
		sideY = (origin.Y - float64(cy)) * deltaY
	} else {
		sideY = (float64(cy) + 1 - origin.Y) * deltaY
	}

	for i := 0; i < maxSteps; i++ {
		var side Side
		var dist float64
		if sideX < sideY {
			dist = sideX
			sideX += deltaX
			cx += stepX
			side = SideX
		} else {
			dist = sideY
			sideY += deltaY
			cy += stepY
			side = SideY
		}

		k := m.KindAt(cx, cy)
		if !k.IsWall() {
			continue
		}

		var u float64
		if side == SideX {
			u = origin.Y + dist*dir.Y
			u -= math.Floor(u)
			if dir.X < 0 {
				u = 1 - u
			}
		} else {
			u = origin.X + dist*dir.X
			u -= math.Floor(u)
			if dir.Y > 0 {
				u = 1 - u
			}
		}
		if u >= 1 {
			u = 0
		}
		return Hit{Dist: dist, Side: side, U: u, Cell: core.Point{X: cx, Y: cy}, Kind: k, OK: true}
	}
	return Hit{Dist: math.Inf(1)}
}
