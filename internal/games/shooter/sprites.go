package shooter

import (
	"image/color"
	"math"

	"github.com/jerecoder/cave-snake/internal/raycast"
	"github.com/jerecoder/cave-snake/internal/sim"
)

var gruntRows = []string{
	"..gggg..",
	".gGggGg.",
	".gggggg.",
	"..gmmg..",
	".gggggg.",
	"gg.gg.gg",
	"g..gg..g",
	"..g..g..",
}

var bossRows = []string{
	"..rrrrrr..",
	".rRRrrRRr.",
	"rrYrrrrYrr",
	"rrrrrrrrrr",
	"rr.mmmm.rr",
	".rrrrrrrr.",
	"rr.rrrr.rr",
	"r..r..r..r",
}

var (
	gruntPalette = map[rune]color.RGBA{
		'g': {70, 150, 60, 255},
		'G': {240, 240, 120, 255},
		'm': {40, 20, 20, 255},
	}
	gruntHurtPalette = map[rune]color.RGBA{
		'g': {230, 90, 80, 255},
		'G': {255, 255, 255, 255},
		'm': {80, 20, 20, 255},
	}
	bossPalette = map[rune]color.RGBA{
		'r': {150, 40, 160, 255},
		'R': {210, 90, 230, 255},
		'Y': {255, 230, 80, 255},
		'm': {30, 10, 30, 255},
	}
	bossHurtPalette = map[rune]color.RGBA{
		'r': {255, 120, 120, 255},
		'R': {255, 200, 200, 255},
		'Y': {255, 255, 255, 255},
		'm': {90, 20, 20, 255},
	}
)

// samplers are built once; Glyph pre-splits its rows.
var (
	gruntSampler     = raycast.Glyph(gruntRows, gruntPalette)
	gruntHurtSampler = raycast.Glyph(gruntRows, gruntHurtPalette)
	bossSampler      = raycast.Glyph(bossRows, bossPalette)
	bossHurtSampler  = raycast.Glyph(bossRows, bossHurtPalette)
	fireballSampler  = raycast.Disc(color.RGBA{255, 170, 40, 255}, color.RGBA{200, 60, 20, 255})
	sparkSampler     = raycast.Disc(color.RGBA{255, 250, 200, 255}, color.RGBA{255, 200, 90, 255})
	healthSampler    = raycast.Disc(color.RGBA{230, 50, 60, 255}, color.RGBA{255, 255, 255, 255})
	ammoSampler      = raycast.Disc(color.RGBA{220, 190, 60, 255}, color.RGBA{120, 90, 20, 255})
	portalOpen       = raycast.Disc(color.RGBA{90, 220, 255, 255}, color.RGBA{40, 90, 230, 255})
	portalShut       = raycast.Disc(color.RGBA{60, 60, 80, 255}, color.RGBA{30, 30, 45, 255})
)

// Sprites lists the billboards of the floor for the renderer.
func (c *Context) Sprites() []raycast.Sprite {
	out := make([]raycast.Sprite, 0, len(c.Enemies)+len(c.Projectiles)+len(c.Sparks)+len(c.Pickups)+2)

	portal := raycast.Sprite{Pos: c.Portal.Pos, Scale: 0.7, Sample: portalShut}
	if c.Portal.Open {
		portal.Sample = portalOpen
		portal.Emissive = true
		portal.Scale = 0.75 + 0.05*math.Sin(c.Portal.Spin)
	}
	out = append(out, portal)

	for _, e := range c.Enemies {
		if !e.Alive() {
			continue
		}
		s := raycast.Sprite{Pos: e.Pos, Scale: 0.7, Lift: -0.15, Sample: gruntSampler}
		if e.Hurt > 0 {
			s.Sample = gruntHurtSampler
		}
		out = append(out, s)
	}

	if b := c.Boss; b != nil && b.Alive() {
		s := raycast.Sprite{Pos: b.Pos, Scale: 1.1, Sample: bossSampler}
		if b.Hurt > 0 {
			s.Sample = bossHurtSampler
		}
		out = append(out, s)
	}

	for _, pr := range c.Projectiles {
		out = append(out, raycast.Sprite{Pos: pr.Pos, Scale: pr.R * 2, Emissive: true, Sample: fireballSampler})
	}
	for _, s := range c.Sparks {
		out = append(out, raycast.Sprite{Pos: s.Pos, Scale: 0.2 * s.Life / sim.SparkLife, Emissive: true, Sample: sparkSampler})
	}
	for _, pk := range c.Pickups {
		if pk.Taken {
			continue
		}
		s := raycast.Sprite{Pos: pk.Pos, Scale: 0.3, Lift: -0.3, Sample: healthSampler}
		if pk.Kind == sim.PickupAmmo {
			s.Sample = ammoSampler
		}
		out = append(out, s)
	}
	return out
}
