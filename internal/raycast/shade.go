package raycast

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ShadeTable holds a texture prebaked at a number of brightness levels.
// Level 0 is fully fogged, the last level is the texture as authored.
type ShadeTable struct {
	Size   int
	Levels int
	pix    []color.RGBA // Levels * Size * Size
}

// Shade darkens c to brightness b and tints it toward fog as the light
// falls off.
func Shade(c, fog color.RGBA, b float64) color.RGBA {
	b = math.Max(0, math.Min(1, b))
	lit := fromRGBA(c)
	lit = colorful.Color{R: lit.R * b, G: lit.G * b, B: lit.B * b}
	return toRGBA(lit.BlendRgb(fromRGBA(fog), (1-b)*(1-b)))
}

// NewShadeTable bakes tex at levels brightness steps.
func NewShadeTable(tex *Texture, levels int, fog color.RGBA) *ShadeTable {
	levels = max(2, levels)
	n := tex.Size * tex.Size
	st := &ShadeTable{Size: tex.Size, Levels: levels, pix: make([]color.RGBA, levels*n)}
	for lv := 0; lv < levels; lv++ {
		b := float64(lv) / float64(levels-1)
		for i, c := range tex.Pix {
			st.pix[lv*n+i] = Shade(c, fog, b)
		}
	}
	return st
}

// Level quantises a brightness in [0,1] to a table level.
func (st *ShadeTable) Level(b float64) int {
	lv := int(b*float64(st.Levels-1) + 0.5)
	return max(0, min(st.Levels-1, lv))
}

// At returns the texel (x, y) at level lv, wrapping coordinates.
func (st *ShadeTable) At(lv, x, y int) color.RGBA {
	m := st.Size - 1
	return st.pix[lv*st.Size*st.Size+(y&m)*st.Size+(x&m)]
}
