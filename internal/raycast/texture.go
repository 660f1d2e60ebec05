package raycast

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jerecoder/cave-snake/internal/rng"
)

// ErrTextureSize is returned for textures whose side is not a power of two.
var ErrTextureSize = errors.New("raycast: texture size must be a power of two")

// Texture is a square tiling texture. Its side is a power of two so texel
// lookups can wrap with a mask.
type Texture struct {
	Size int
	Pix  []color.RGBA // row-major, Size*Size
}

// NewTexture wraps pix as a size x size texture.
func NewTexture(size int, pix []color.RGBA) (*Texture, error) {
	if !IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: got %d", ErrTextureSize, size)
	}
	if len(pix) != size*size {
		return nil, fmt.Errorf("raycast: texture has %d pixels, expected %d", len(pix), size*size)
	}
	return &Texture{Size: size, Pix: pix}, nil
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// At returns the texel at (x, y), wrapping both coordinates.
func (t *Texture) At(x, y int) color.RGBA {
	m := t.Size - 1
	return t.Pix[(y&m)*t.Size+(x&m)]
}

// Textures is the set a Renderer draws with.
type Textures struct {
	Walls   [3]*Texture // indexed by world.Kind variant
	Floor   *Texture
	Ceiling *Texture
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func fromRGBA(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// jitter varies lightness of base by up to amount, driven by r.
func jitter(base colorful.Color, r *rng.Rand, amount float64) colorful.Color {
	h, s, l := base.Hsl()
	return colorful.Hsl(h, s, l+r.Range(-amount, amount))
}

func newProcedural(size int, fn func(x, y int) colorful.Color) *Texture {
	pix := make([]color.RGBA, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pix[y*size+x] = toRGBA(fn(x, y))
		}
	}
	return &Texture{Size: size, Pix: pix}
}

// BrickTexture draws staggered bricks with dark mortar.
func BrickTexture(size int, base colorful.Color, r *rng.Rand) *Texture {
	mortar := base.BlendRgb(colorful.Color{}, 0.7)
	rowH := max(2, size/4)
	brickW := max(4, size/2)
	return newProcedural(size, func(x, y int) colorful.Color {
		row := y / rowH
		off := 0
		if row%2 == 1 {
			off = brickW / 2
		}
		if y%rowH == 0 || (x+off)%brickW == 0 {
			return mortar
		}
		return jitter(base, r, 0.06)
	})
}

// StoneTexture draws irregular cobbles: noisy blocks with dark seams.
func StoneTexture(size int, base colorful.Color, r *rng.Rand) *Texture {
	block := max(2, size/4)
	shades := make([]float64, (size/block+1)*(size/block+1))
	for i := range shades {
		shades[i] = r.Range(-0.08, 0.08)
	}
	seam := base.BlendRgb(colorful.Color{}, 0.55)
	return newProcedural(size, func(x, y int) colorful.Color {
		if x%block == 0 || y%block == 0 {
			return seam
		}
		h, s, l := base.Hsl()
		return jitter(colorful.Hsl(h, s, l+shades[(y/block)*(size/block+1)+x/block]), r, 0.03)
	})
}

// MossTexture is stone with green growth creeping down from the top.
func MossTexture(size int, base colorful.Color, r *rng.Rand) *Texture {
	stone := StoneTexture(size, base, r)
	moss := colorful.Hsl(110, 0.45, 0.28)
	for y := 0; y < size; y++ {
		reach := 1 - float64(y)/float64(size)
		for x := 0; x < size; x++ {
			if r.Float() < reach*0.6 {
				stone.Pix[y*size+x] = toRGBA(jitter(moss, r, 0.05))
			}
		}
	}
	return stone
}

// TileTexture is a checker of two slightly different flagstones.
func TileTexture(size int, base colorful.Color, r *rng.Rand) *Texture {
	half := max(1, size/2)
	alt := base.BlendRgb(colorful.Color{}, 0.15)
	return newProcedural(size, func(x, y int) colorful.Color {
		if x%half == 0 || y%half == 0 {
			return base.BlendRgb(colorful.Color{}, 0.45)
		}
		if (x/half+y/half)%2 == 0 {
			return jitter(base, r, 0.03)
		}
		return jitter(alt, r, 0.03)
	})
}

// DefaultTextures builds the dungeon texture set from seed.
func DefaultTextures(size int, seed uint32) (Textures, error) {
	if !IsPowerOfTwo(size) {
		return Textures{}, fmt.Errorf("%w: got %d", ErrTextureSize, size)
	}
	r := rng.New(seed)
	return Textures{
		Walls: [3]*Texture{
			BrickTexture(size, colorful.Hsl(12, 0.45, 0.38), r),
			StoneTexture(size, colorful.Hsl(215, 0.12, 0.42), r),
			MossTexture(size, colorful.Hsl(30, 0.15, 0.34), r),
		},
		Floor:   TileTexture(size, colorful.Hsl(35, 0.2, 0.3), r),
		Ceiling: StoneTexture(size, colorful.Hsl(230, 0.18, 0.18), r),
	}, nil
}
