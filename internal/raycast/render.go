package raycast

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/jerecoder/cave-snake/internal/core"
)

// Config controls the projection and lighting.
type Config struct {
	Width, Height int
	FOV           float64 // radians
	MaxSteps      int     // DDA budget per ray
	FogK          float64 // k in 1/(1+k*d^2)
	SideShade     float64 // brightness multiplier for SideY hits
	FocusFalloff  float64 // how much the screen edges dim, 0..1
	TorchAmp      float64
	TorchHz       float64
	ShadeLevels   int
	FogColor      color.RGBA
}

// DefaultConfig returns a small terminal-friendly view.
func DefaultConfig() Config {
	return Config{
		Width:        120,
		Height:       60,
		FOV:          66 * math.Pi / 180,
		MaxSteps:     64,
		FogK:         0.035,
		SideShade:    0.72,
		FocusFalloff: 0.35,
		TorchAmp:     0.06,
		TorchHz:      0.7,
		ShadeLevels:  32,
		FogColor:     color.RGBA{R: 8, G: 11, B: 16, A: 255},
	}
}

// Validate rejects configurations the projection cannot handle.
func (c Config) Validate() error {
	switch {
	case c.Width < 2 || c.Height < 2:
		return fmt.Errorf("raycast: view %dx%d too small", c.Width, c.Height)
	case c.FOV <= 0 || c.FOV >= math.Pi:
		return fmt.Errorf("raycast: field of view %.2f rad outside (0, pi)", c.FOV)
	case c.MaxSteps < 1:
		return errors.New("raycast: max steps must be positive")
	case c.ShadeLevels < 2:
		return errors.New("raycast: at least two shade levels required")
	}
	return nil
}

// Camera is the viewer for one frame.
type Camera struct {
	Pos   core.Vec2
	Angle float64
	// Dim darkens the whole view, 0 = none, 1 = black. Used for vision
	// impairment.
	Dim float64
}

// Forward returns the unit view direction.
func (c Camera) Forward() core.Vec2 {
	return core.FromAngle(c.Angle)
}

// Renderer owns the framebuffer, depth buffer and baked textures. It is not
// safe for concurrent use.
type Renderer struct {
	cfg      Config
	projDist float64
	offsets  []float64 // per-column angle offset from the view direction
	cosOff   []float64
	focus    []float64
	zbuf     []float64
	img      *image.RGBA

	walls   [3]*ShadeTable
	floor   *ShadeTable
	ceiling *ShadeTable
}

// New builds a renderer and bakes the shade tables.
func New(cfg Config, tex Textures) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, t := range append(tex.Walls[:], tex.Floor, tex.Ceiling) {
		if t == nil {
			return nil, fmt.Errorf("raycast: texture %d missing", i)
		}
		if !IsPowerOfTwo(t.Size) {
			return nil, fmt.Errorf("%w: texture %d is %d", ErrTextureSize, i, t.Size)
		}
	}

	r := &Renderer{
		cfg:      cfg,
		projDist: float64(cfg.Width) / 2 / math.Tan(cfg.FOV/2),
		offsets:  make([]float64, cfg.Width),
		cosOff:   make([]float64, cfg.Width),
		focus:    make([]float64, cfg.Width),
		zbuf:     make([]float64, cfg.Width),
		img:      image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
	}
	half := float64(cfg.Width) / 2
	for x := 0; x < cfg.Width; x++ {
		r.offsets[x] = math.Atan((float64(x) + 0.5 - half) / r.projDist)
		r.cosOff[x] = math.Cos(r.offsets[x])
		e := (float64(x) + 0.5 - half) / half
		r.focus[x] = 1 - cfg.FocusFalloff*e*e
	}
	for i, t := range tex.Walls {
		r.walls[i] = NewShadeTable(t, cfg.ShadeLevels, cfg.FogColor)
	}
	r.floor = NewShadeTable(tex.Floor, cfg.ShadeLevels, cfg.FogColor)
	r.ceiling = NewShadeTable(tex.Ceiling, cfg.ShadeLevels, cfg.FogColor)
	return r, nil
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config { return r.cfg }

// ProjDist returns the distance to the projection plane in pixels.
func (r *Renderer) ProjDist() float64 { return r.projDist }

// ZBuffer returns the per-column perpendicular wall distance of the last
// frame. The slice is reused between frames.
func (r *Renderer) ZBuffer() []float64 { return r.zbuf }

// ColumnDir returns the unit ray direction of screen column x.
func (r *Renderer) ColumnDir(cam Camera, x int) core.Vec2 {
	return core.FromAngle(cam.Angle + r.offsets[x])
}

// torch is the slow brightness pulse at time t seconds.
func (r *Renderer) torch(t float64) float64 {
	return 1 + r.cfg.TorchAmp*math.Sin(2*math.Pi*r.cfg.TorchHz*t)
}

// falloff is the inverse-quadratic light at distance d.
func (r *Renderer) falloff(d float64) float64 {
	return 1 / (1 + r.cfg.FogK*d*d)
}

// Render draws one frame and returns the framebuffer. The image is reused
// by the next call.
func (r *Renderer) Render(m Map, cam Camera, t float64, sprites []Sprite) *image.RGBA {
	light := r.torch(t) * (1 - core.ClampF(cam.Dim, 0, 1))

	r.clear()
	r.drawFloorCeiling(cam, light)
	r.drawWalls(m, cam, light)
	r.drawSprites(cam, light, sprites)
	return r.img
}

func (r *Renderer) clear() {
	fog := r.cfg.FogColor
	pix := r.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = fog.R, fog.G, fog.B, 255
	}
}

// span is a straight run of pixels sampled from one shade table with
// linearly interpolated texel coordinates. Wall columns and floor rows are
// both spans.
type span struct {
	x, y   int // first pixel
	dx, dy int // pixel step
	n      int
	u, v   float64 // texel coordinate at the first pixel
	du, dv float64
	bright float64 // multiplied by the column focus weight per pixel
	table  *ShadeTable
}

func (r *Renderer) drawSpan(s span) {
	w := r.cfg.Width
	x, y := s.x, s.y
	u, v := s.u, s.v
	for i := 0; i < s.n; i++ {
		lv := s.table.Level(s.bright * r.focus[x])
		c := s.table.At(lv, int(math.Floor(u)), int(math.Floor(v)))
		off := y*r.img.Stride + x*4
		r.img.Pix[off] = c.R
		r.img.Pix[off+1] = c.G
		r.img.Pix[off+2] = c.B
		r.img.Pix[off+3] = 255
		x += s.dx
		y += s.dy
		u += s.du
		v += s.dv
		if x >= w {
			break
		}
	}
}

// drawFloorCeiling projects every row above and below the horizon onto the
// ground plane and walks it between the leftmost and rightmost rays.
func (r *Renderer) drawFloorCeiling(cam Camera, light float64) {
	w, h := r.cfg.Width, r.cfg.Height
	fwd := cam.Forward()
	plane := fwd.Perp().Scale(math.Tan(r.cfg.FOV / 2))
	left := fwd.Sub(plane)
	right := fwd.Add(plane)
	horizon := float64(h) / 2

	for y := 0; y < h; y++ {
		var p float64
		table := r.floor
		dim := 1.0
		if float64(y)+0.5 > horizon {
			p = float64(y) + 0.5 - horizon
		} else {
			p = horizon - float64(y) - 0.5
			table = r.ceiling
			dim = 0.8
		}
		rowDist := 0.5 * r.projDist / p

		start := cam.Pos.Add(left.Scale(rowDist))
		end := cam.Pos.Add(right.Scale(rowDist))
		step := end.Sub(start).Scale(1 / float64(w))
		first := start.Add(step.Scale(0.5))

		size := float64(table.Size)
		r.drawSpan(span{
			x: 0, y: y, dx: 1, n: w,
			u: first.X * size, v: first.Y * size,
			du: step.X * size, dv: step.Y * size,
			bright: r.falloff(rowDist) * light * dim,
			table:  table,
		})
	}
}

func (r *Renderer) drawWalls(m Map, cam Camera, light float64) {
	h := r.cfg.Height
	for x := 0; x < r.cfg.Width; x++ {
		dir := r.ColumnDir(cam, x)
		hit := Cast(m, cam.Pos, dir, r.cfg.MaxSteps)
		if !hit.OK {
			r.zbuf[x] = math.Inf(1)
			continue
		}
		perp := math.Max(hit.Dist*r.cosOff[x], 1e-4)
		r.zbuf[x] = perp

		lineH := r.projDist / perp
		top := float64(h)/2 - lineH/2
		y0 := max(0, int(math.Ceil(top-0.5)))
		y1 := min(h, int(math.Ceil(top+lineH-0.5)))
		if y1 <= y0 {
			continue
		}

		table := r.walls[max(0, hit.Kind.Variant())%3]
		size := float64(table.Size)
		texStep := size / lineH

		bright := r.falloff(perp) * light
		if hit.Side == SideY {
			bright *= r.cfg.SideShade
		}
		r.drawSpan(span{
			x: x, y: y0, dy: 1, n: y1 - y0,
			u: math.Floor(hit.U * size), v: (float64(y0) + 0.5 - top) * texStep,
			dv:     texStep,
			bright: bright,
			table:  table,
		})
	}
}

// WallHeight returns the clamped on-screen height of a wall at perpendicular
// distance perp.
func (r *Renderer) WallHeight(perp float64) int {
	if perp <= 0 {
		return r.cfg.Height
	}
	return min(r.cfg.Height, int(r.projDist/perp))
}
