package raycast

import (
	"image/color"
	"math"
	"slices"

	"github.com/jerecoder/cave-snake/internal/core"
)

// SpriteTolerance widens the field of view when culling billboards so
// sprites straddling the screen edge are still drawn.
const SpriteTolerance = 0.35

// Sampler returns the colour of a billboard at (u, v) in [0,1)^2, or false
// for a transparent texel.
type Sampler func(u, v float64) (color.RGBA, bool)

// Sprite is a camera-facing billboard.
type Sprite struct {
	Pos      core.Vec2
	Scale    float64 // size relative to a wall of the same distance
	Lift     float64 // vertical offset in wall heights, positive is up
	Emissive bool    // ignores distance falloff and fog
	Sample   Sampler
}

type projected struct {
	s    *Sprite
	dist float64
}

// drawSprites projects billboards far to near. Each destination column is
// tested against the wall depth buffer; sprites do not test each other.
func (r *Renderer) drawSprites(cam Camera, light float64, sprites []Sprite) {
	if len(sprites) == 0 {
		return
	}
	order := make([]projected, 0, len(sprites))
	for i := range sprites {
		if sprites[i].Sample == nil || sprites[i].Scale <= 0 {
			continue
		}
		order = append(order, projected{s: &sprites[i], dist: sprites[i].Pos.Dist(cam.Pos)})
	}
	slices.SortStableFunc(order, func(a, b projected) int {
		switch {
		case a.dist > b.dist:
			return -1
		case a.dist < b.dist:
			return 1
		}
		return 0
	})

	for _, p := range order {
		r.drawBillboard(cam, light, p.s, p.dist)
	}
}

func (r *Renderer) drawBillboard(cam Camera, light float64, s *Sprite, dist float64) {
	w, h := r.cfg.Width, r.cfg.Height
	rel := s.Pos.Sub(cam.Pos)
	angle := core.WrapAngle(rel.Angle() - cam.Angle)
	if math.Abs(angle) > r.cfg.FOV/2+SpriteTolerance {
		return
	}
	perp := dist * math.Cos(angle)
	if perp < 0.05 {
		return
	}

	screenX := float64(w)/2 + math.Tan(angle)*r.projDist
	size := r.projDist / perp * s.Scale
	left := screenX - size/2
	top := float64(h)/2 - size/2 - s.Lift*r.projDist/perp

	x0 := max(0, int(math.Floor(left)))
	x1 := min(w, int(math.Ceil(left+size)))
	y0 := max(0, int(math.Floor(top)))
	y1 := min(h, int(math.Ceil(top+size)))

	bright := 1.0
	if !s.Emissive {
		bright = r.falloff(perp) * light
	}
	fog := r.cfg.FogColor

	for x := x0; x < x1; x++ {
		if perp >= r.zbuf[x] {
			continue
		}
		u := (float64(x) + 0.5 - left) / size
		if u < 0 || u >= 1 {
			continue
		}
		for y := y0; y < y1; y++ {
			v := (float64(y) + 0.5 - top) / size
			if v < 0 || v >= 1 {
				continue
			}
			c, ok := s.Sample(u, v)
			if !ok {
				continue
			}
			if !s.Emissive {
				c = Shade(c, fog, bright*r.focus[x])
			}
			off := y*r.img.Stride + x*4
			r.img.Pix[off] = c.R
			r.img.Pix[off+1] = c.G
			r.img.Pix[off+2] = c.B
			r.img.Pix[off+3] = 255
		}
	}
}

// Disc returns a sampler for a filled circle with a darker rim.
func Disc(fill, rim color.RGBA) Sampler {
	return func(u, v float64) (color.RGBA, bool) {
		dx, dy := u-0.5, v-0.5
		d := dx*dx + dy*dy
		switch {
		case d > 0.25:
			return color.RGBA{}, false
		case d > 0.16:
			return rim, true
		}
		return fill, true
	}
}

// Glyph returns a sampler for a small bitmap drawn with one colour per
// rune, '.' or ' ' being transparent. Rows must have equal length.
func Glyph(rows []string, palette map[rune]color.RGBA) Sampler {
	h := len(rows)
	if h == 0 {
		return func(float64, float64) (color.RGBA, bool) { return color.RGBA{}, false }
	}
	grid := make([][]rune, h)
	for i, row := range rows {
		grid[i] = []rune(row)
	}
	w := len(grid[0])
	return func(u, v float64) (color.RGBA, bool) {
		gx, gy := int(u*float64(w)), int(v*float64(h))
		if gy < 0 || gy >= h || gx < 0 || gx >= len(grid[gy]) {
			return color.RGBA{}, false
		}
		c, ok := palette[grid[gy][gx]]
		return c, ok
	}
}
