package shooter

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/raycast"
)

const (
	hudRows    = 2
	footerRows = 1
	minViewW   = 24
	minViewH   = 12 // pixels, two per row
)

// Frame returns the last rendered first-person view, nil before the first
// Render.
func (g *Game) Frame() *image.RGBA {
	return g.frame
}

// viewSize fits the configured view into the screen: one pixel per column
// and two per row below the HUD.
func (g *Game) viewSize(dst *core.Screen) (int, int) {
	w := min(g.cfg.Render.Width, dst.Width())
	h := min(g.cfg.Render.Height, (dst.Height()-hudRows-footerRows)*2)
	return w, h
}

// ensureRenderer rebuilds the renderer when the view size changes.
func (g *Game) ensureRenderer(w, h int) error {
	if g.renderer != nil {
		rc := g.renderer.Config()
		if rc.Width == w && rc.Height == h {
			return nil
		}
	}
	rc := g.cfg.Render.Raycast()
	rc.Width, rc.Height = w, h
	r, err := raycast.New(rc, g.tex)
	if err != nil {
		return fmt.Errorf("shooter: renderer: %w", err)
	}
	g.renderer = r
	return nil
}

// Render draws the view, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.err != nil {
		g.renderOverlay(dst, "Cannot start Maze Raider", g.err.Error())
		return
	}

	w, h := g.viewSize(dst)
	g.tooSmall = w < minViewW || h < minViewH
	if g.tooSmall {
		g.renderHUD(dst)
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	if err := g.ensureRenderer(w, h); err != nil {
		g.err = err
		g.renderOverlay(dst, "Cannot start Maze Raider", err.Error())
		return
	}

	p := g.player
	cam := raycast.Camera{Pos: p.Pos, Angle: p.Angle, Dim: g.ctx.Aura.Impair}
	g.frame = g.renderer.Render(g.ctx.Level, cam, g.ctx.Time, g.ctx.Sprites())
	dst.BlitImage(g.frame, (dst.Width()-w)/2, hudRows)

	g.renderCrosshair(dst, w, h)
	g.renderHUD(dst)
	if g.showMap {
		g.renderMinimap(dst)
	}
	g.renderFooter(dst)

	switch {
	case g.dead:
		g.renderOverlay(dst, "GAME OVER", g.deathReason,
			fmt.Sprintf("Score %d  Kills %d  Best floor %d", g.Score(), g.Kills(), g.bestFloor), "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderCrosshair(dst *core.Screen, w, h int) {
	x := (dst.Width()-w)/2 + w/2
	y := hudRows + h/4
	dst.SetColor(x, y, '+', core.ColorBrightWhite)
}

// renderHUD draws the status bar and, on boss floors, the boss health.
func (g *Game) renderHUD(dst *core.Screen) {
	p := g.player
	ctx := g.ctx
	weapon := ctx.Weapon()

	hud := fmt.Sprintf(" MAZE RAIDER  Floor: %d  Score: %d  Ammo: %d  %s  Left: %d  HP: ",
		ctx.Floor, g.Score(), p.Ammo, strings.ToUpper(weapon.Name), ctx.EnemiesLeft())
	dst.DrawText(0, 0, hud)
	hpColor := core.ColorBrightGreen
	switch {
	case p.Hurt > 0:
		hpColor = core.ColorBrightWhite
	case p.HP*3 < p.MaxHP:
		hpColor = core.ColorBrightRed
	case p.HP*3 < p.MaxHP*2:
		hpColor = core.ColorBrightYellow
	}
	dst.DrawTextColor(len([]rune(hud)), 0, fmt.Sprintf("%d/%d", p.HP, p.MaxHP), hpColor)

	if b := ctx.Boss; b != nil && b.Alive() {
		barW := max(0, min(30, dst.Width()-10))
		filled := int(float64(barW) * b.HealthFrac())
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barW-filled)
		dst.DrawTextColor(1, 1, "BOSS ", core.ColorBrightMagenta)
		dst.DrawTextColor(6, 1, bar, core.ColorMagenta)
		return
	}
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	if g.ctx.Portal.Open {
		dst.DrawTextCenteredColor(y, "PORTAL OPEN: FIND THE EXIT", core.ColorBrightCyan)
		return
	}
	dst.DrawTextColor(1, y, fmt.Sprintf("WASD move  Q/E strafe  space fire  1-3 weapon  O map  seed %#08x", g.seed), core.ColorGray)
}

// renderMinimap draws the floor one cell per column in the top-right
// corner, clipped to the screen.
func (g *Game) renderMinimap(dst *core.Screen) {
	lv := g.ctx.Level
	rows := min(lv.Height(), dst.Height()-hudRows-footerRows)
	x0 := dst.Width() - lv.Width() - 1
	if x0 < 0 || rows <= 0 {
		return
	}
	y0 := hudRows
	for y := range rows {
		for x := range lv.Width() {
			r, c := ' ', core.ColorDefault
			if !lv.IsFree(x, y) {
				r, c = '█', core.ColorDarkGray
			}
			dst.SetColor(x0+x, y0+y, r, c)
		}
	}

	mark := func(pos core.Vec2, r rune, c core.Color) {
		cell := pos.Cell()
		if cell.Y >= 0 && cell.Y < rows {
			dst.SetColor(x0+cell.X, y0+cell.Y, r, c)
		}
	}
	portal := core.ColorBlue
	if g.ctx.Portal.Open {
		portal = core.ColorBrightCyan
	}
	mark(g.ctx.Portal.Pos, 'O', portal)
	for _, pk := range g.ctx.Pickups {
		if !pk.Taken {
			mark(pk.Pos, '+', core.ColorYellow)
		}
	}
	for _, e := range g.ctx.Enemies {
		if e.Alive() {
			mark(e.Pos, 'e', core.ColorBrightRed)
		}
	}
	if b := g.ctx.Boss; b != nil && b.Alive() {
		mark(b.Pos, 'B', core.ColorBrightMagenta)
	}
	mark(g.player.Pos, playerArrow(g.player.Angle), core.ColorBrightYellow)
}

// playerArrow picks the arrow closest to the heading; +Y is down the map.
func playerArrow(a float64) rune {
	arrows := [4]rune{'→', '↓', '←', '↑'}
	i := int((core.WrapAngle(a)/(math.Pi/2))+4.5) % 4
	return arrows[i]
}

// renderOverlay draws a centered box with one line per message.
func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}
	boxW := min(dst.Width(), maxLen+4)
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	for y := boxY + 1; y < boxY+boxH-1; y++ {
		for x := boxX + 1; x < boxX+boxW-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBoxColor(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	for i, line := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = core.ColorBrightYellow
		}
		dst.DrawTextCenteredColor(boxY+1+i, line, c)
	}
}
