package snake

import (
	"fmt"
	"strings"

	"github.com/jerecoder/cave-snake/internal/core"
)

const (
	hudHeight    = 2
	footerHeight = 1
	minVisRows   = 8
	camHeadShare = 0.35 // head sits this far up the visible rows
)

// layout is where the board lands on the screen for one frame.
type layout struct {
	cellW     int // terminal columns per board cell
	offsetX   int
	bottomRow int // screen row of camBottom
	visRows   int
	camBottom int // lowest board row shown
}

func (g *Game) layoutFor(dst *core.Screen) (layout, bool) {
	w := g.board.Width()
	l := layout{cellW: 2}
	if dst.Width() < w*2+2 {
		l.cellW = 1
	}
	if dst.Width() < w+2 || dst.Height() < hudHeight+footerHeight+minVisRows {
		return l, false
	}

	l.visRows = max(minVisRows, dst.Height()-hudHeight-footerHeight)
	l.offsetX = (dst.Width() - w*l.cellW) / 2
	l.bottomRow = hudHeight + l.visRows - 1
	l.camBottom = CameraBottom(g.head.Y, l.visRows, g.board.RevealedHeight())
	return l, true
}

// CameraBottom keeps the head about a third of the way up the view,
// clamped to the revealed rows.
func CameraBottom(headY, visRows, revealedHeight int) int {
	cam := headY - int(float64(visRows)*camHeadShare)
	maxCam := revealedHeight - visRows
	if maxCam <= 0 {
		return 0
	}
	return core.Clamp(cam, 0, maxCam)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	l, ok := g.layoutFor(dst)
	g.tooSmall = !ok
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst, l)
	if g.showPath {
		g.renderPath(dst, l)
	}
	g.renderTrail(dst, l)
	g.renderFooter(dst)

	// Draw overlays
	switch {
	case g.dead:
		g.renderOverlay(dst, "GAME OVER", g.deathReason, fmt.Sprintf("Score %d  Best level %d", g.Score(), g.bestLevel), "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hearts := strings.Repeat("♥", g.lives)
	hud := fmt.Sprintf(" CAVE SNAKE  Score: %d  Level: %d (best %d)  Fill: %d%%  Lives: ",
		g.Score(), g.ChunkLevel(), g.bestLevel, g.FillPct())
	dst.DrawText(0, 0, hud)
	dst.DrawTextColor(len([]rune(hud)), 0, hearts, core.ColorBrightRed)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := dst.Height() - 1
	switch {
	case g.waiting:
		msg := g.waitReason
		if g.lastRespawn != "" && g.waitReason == waitRespawn {
			msg = fmt.Sprintf("RESPAWNED (%s)  %s", g.lastRespawn, g.waitReason)
		}
		dst.DrawTextCenteredColor(y, msg, core.ColorBrightYellow)
	default:
		path := "on"
		if !g.showPath {
			path = "off"
		}
		dst.DrawTextColor(1, y, fmt.Sprintf("arrows move  O path:%s  I new map  P pause  seed %#08x", path, g.seed), core.ColorGray)
	}
}

// screenPos maps a board cell to its screen column and row.
func (l layout) screenPos(x, y, offsetX int) (int, int) {
	return offsetX + x*l.cellW, l.bottomRow - (y - l.camBottom)
}

func (l layout) visible(y int) bool {
	return y >= l.camBottom && y < l.camBottom+l.visRows
}

func (g *Game) put(dst *core.Screen, l layout, x, y int, r rune, c core.Color) {
	if !l.visible(y) {
		return
	}
	sx, sy := l.screenPos(x, y, l.offsetX)
	dst.SetColor(sx, sy, r, c)
	if l.cellW == 2 {
		fill := ' '
		if r == '█' || r == '░' {
			fill = r
		}
		dst.SetColor(sx+1, sy, fill, c)
	}
}

// renderBoard draws walls, open cells and the unrevealed rows above.
func (g *Game) renderBoard(dst *core.Screen, l layout) {
	w := g.board.Width()
	top := g.board.RevealedHeight()
	for y := l.camBottom; y < l.camBottom+l.visRows; y++ {
		if y >= top {
			for x := range w {
				g.put(dst, l, x, y, '░', core.ColorNavy)
			}
			continue
		}
		for x := range w {
			if g.board.IsFree(x, y) {
				g.put(dst, l, x, y, '·', core.ColorDarkGray)
			} else {
				g.put(dst, l, x, y, '█', core.ColorGray)
			}
		}
		// chunk labels in the left margin
		if y%g.board.ChunkHeight() == 0 && l.offsetX >= 4 {
			sx, sy := l.screenPos(0, y, l.offsetX)
			dst.DrawTextColor(sx-4, sy, fmt.Sprintf("L%-2d", y/g.board.ChunkHeight()+1), core.ColorDarkGray)
		}
	}
}

// renderPath marks each unfilled cell of the canonical path with an arrow
// toward its successor, bridging consecutive chunks.
func (g *Game) renderPath(dst *core.Screen, l layout) {
	for _, link := range g.PathLinks() {
		from, to := g.board.Cell(link[0]), g.board.Cell(link[1])
		if g.trail.Has(from) || !l.visible(from.Y) {
			continue
		}
		g.put(dst, l, from.X, from.Y, arrow(to.X-from.X, to.Y-from.Y), core.ColorCyan)
	}
}

// PathLinks returns consecutive key pairs of the canonical path over all
// revealed chunks, including the link from each chunk's last cell to the
// next chunk's first.
func (g *Game) PathLinks() [][2]int {
	var links [][2]int
	for c := 0; c < g.board.Revealed(); c++ {
		path := g.board.Chunk(c).Path
		for i := 0; i+1 < len(path); i++ {
			links = append(links, [2]int{path[i], path[i+1]})
		}
		if next := g.board.Chunk(c + 1); next != nil && len(path) > 0 && len(next.Path) > 0 {
			links = append(links, [2]int{path[len(path)-1], next.Path[0]})
		}
	}
	return links
}

func arrow(dx, dy int) rune {
	switch {
	case dx > 0:
		return '→'
	case dx < 0:
		return '←'
	case dy > 0:
		return '↑'
	default:
		return '↓'
	}
}

// renderTrail draws the filled cells and the head.
func (g *Game) renderTrail(dst *core.Screen, l layout) {
	w := g.board.Width()
	for key := range g.trail.cells {
		x, y := key%w, key/w
		g.put(dst, l, x, y, '█', core.ColorGreen)
	}
	head := '@'
	c := core.ColorBrightYellow
	if g.waiting {
		c = core.ColorBrightMagenta
	}
	g.put(dst, l, g.head.X, g.head.Y, head, c)
}

// renderOverlay draws a centered box with one line per message.
func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}
	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

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
