package snake

import (
	"fmt"
	"strings"
	"time"

	"github.com/jerecoder/cave-snake/internal/config"
	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/pathfind"
	"github.com/jerecoder/cave-snake/internal/registry"
	"github.com/jerecoder/cave-snake/internal/rng"
	"github.com/jerecoder/cave-snake/internal/world"
)

// Respawn and death reasons.
const (
	ReasonHitWall      = "HIT WALL"
	ReasonHitTrail     = "HIT YOUR TRAIL"
	ReasonNoValidMoves = "NO VALID MOVES"
	ReasonPathBlocked  = "PATH BLOCKED"
)

const (
	waitNewTiles = "NEW TILES: CHOOSE MOVE"
	waitRespawn  = "RESPAWN: CHOOSE MOVE"
	waitStart    = "CHOOSE MOVE"
)

// Direction aliases, +Y is up the board.
var (
	DirUp    = core.Point{X: 0, Y: 1}
	DirDown  = core.Point{X: 0, Y: -1}
	DirLeft  = core.Point{X: -1, Y: 0}
	DirRight = core.Point{X: 1, Y: 0}
)

// Game implements Cave Snake: fill every free cell of the revealed board
// without crossing your own trail, and the board grows upward.
type Game struct {
	cfg      config.SnakeConfig
	fixedCfg bool // set by NewWithConfig; Reset skips loading
	preset   config.DifficultyPreset

	seed    uint32
	seedRng *rng.Rand
	board   *world.Board
	trail   trail
	tick    uint64
	dt      time.Duration
	elapsed time.Duration
	accMs   float64

	// Agent state
	head   core.Point
	dir    core.Point
	want   core.Point
	queue  []core.Point
	length int
	lives  int
	maxY   int

	waiting       bool
	waitReason    string
	dead          bool
	deathReason   string
	lastRespawn   string
	expandedCount int
	respawnCount  int

	bestLevel int
	showPath  bool
	paused    bool
	tooSmall  bool

	outbox core.Outbox
}

// configPath is the custom config file set from the CLI.
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetPreset picks the difficulty preset for this instance only. It takes
// effect on the next Reset.
func (g *Game) SetPreset(preset string) {
	g.preset = config.ParsePreset(preset)
}

// New creates a Cave Snake game that loads its configuration on Reset.
func New() *Game {
	return &Game{showPath: true}
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.SnakeConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true, showPath: true}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

var (
	_ registry.Game        = (*Game)(nil)
	_ registry.EventSource = (*Game)(nil)
	_ registry.Summarizer  = (*Game)(nil)
	_ registry.Tunable     = (*Game)(nil)
)

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Cave Snake"
}

// Reset starts a new session. The best level survives restarts within a
// session but not a Reset.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.fixedCfg {
		c, err := config.LoadSnake(configPath)
		if err != nil {
			c = config.DefaultSnakeConfig()
		}
		preset := g.preset
		if preset == "" {
			preset = config.DifficultyNormal
		}
		config.ApplySnakePreset(&c, preset)
		g.cfg = c
	}
	g.dt = cfg.TickDuration()
	g.seed = rng.FromInt64(cfg.Seed)
	g.seedRng = rng.New(g.seed ^ 0xa5a5a5a5)
	g.bestLevel = 1
	g.tick = 0
	g.paused = false
	g.outbox.Drain()
	g.restart(g.seed)
}

// restart rolls a fresh board for seed and puts the head at the entry of
// chunk 0.
func (g *Game) restart(seed uint32) {
	g.seed = seed
	g.board = world.NewBoard(seed, g.cfg.Board, g.cfg.Gameplay.AddChunks)
	g.trail = newTrail(g.board.Width())

	g.head = g.board.EntryPoint(0)
	g.dir = DirLeft
	g.want = g.dir
	g.queue = g.queue[:0]
	g.trail.add(g.head)
	g.length = 1
	g.lives = g.cfg.Gameplay.Lives
	g.maxY = g.head.Y

	g.elapsed = 0
	g.accMs = 0
	g.dead = false
	g.deathReason = ""
	g.lastRespawn = ""
	g.expandedCount = 0
	g.respawnCount = 0
	g.waiting = true
	g.waitReason = waitStart
	g.paused = false
}

// nextSeed draws the seed for a restart or a new map.
func (g *Game) nextSeed() uint32 {
	return g.seedRng.Uint32()
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart and new map
	if input.Has(core.ActionNewMap) || (input.Has(core.ActionRestart) && g.dead) {
		g.restart(g.nextSeed())
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionTogglePath) {
		g.showPath = !g.showPath
		g.outbox.Push(core.EventPathToggled, boolInt(g.showPath))
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.dead {
		g.paused = !g.paused
	}

	if g.dead || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if dx, dy, ok := input.Direction(); ok {
		g.setWantedDir(core.Point{X: dx, Y: dy})
	}

	g.advance(g.dt)
	g.bestLevel = max(g.bestLevel, g.board.Revealed(), g.ChunkLevel())

	return core.StepResult{State: g.State()}
}

// setWantedDir queues a turn. Repeats of the last queued direction are
// dropped, reversals are refused, and a full queue drops its oldest entry.
// Any key leaves AwaitingInput; a refused reversal puts it back with the
// same banner.
func (g *Game) setWantedDir(d core.Point) {
	wasWaiting, reason := g.waiting, g.waitReason
	if wasWaiting {
		g.waiting = false
		g.waitReason = ""
		g.accMs = 0
	}

	last := g.want
	if n := len(g.queue); n > 0 {
		last = g.queue[n-1]
	}
	if d == last {
		return
	}
	if d.X == -last.X && d.Y == -last.Y {
		if wasWaiting {
			g.waiting = true
			g.waitReason = reason
		}
		return
	}

	if len(g.queue) >= g.cfg.Gameplay.QueueDepth {
		g.queue = g.queue[1:]
	}
	g.queue = append(g.queue, d)
}

// StepInterval returns the time between moves for the current board size.
func (g *Game) StepInterval() time.Duration {
	return time.Duration(g.stepMs() * float64(time.Millisecond))
}

func (g *Game) stepMs() float64 {
	t := g.cfg.Timing
	pressure := max(0, g.board.Revealed()-g.cfg.Board.StartChunks)
	base := max(t.MinMs, t.BaseMs-t.DecayMs*pressure)
	return float64(base) / t.SpeedDial
}

// advance accumulates dt and makes every move that is due. Growth, a
// respawn or a failed move end the frame early.
func (g *Game) advance(dt time.Duration) {
	if g.dead || g.waiting {
		return
	}
	g.elapsed += dt
	g.accMs += float64(dt) / float64(time.Millisecond)

	stepMs := g.stepMs()
	for g.accMs >= stepMs {
		g.accMs -= stepMs
		moved := g.moveOne()
		if g.dead || !moved {
			return
		}

		if g.board.MaybeExpand(g.length) {
			g.expandedCount++
			g.outbox.Push(core.EventChunkExpanded, g.board.Revealed())
			g.waiting = true
			g.waitReason = waitNewTiles
			g.queue = g.queue[:0]
			g.accMs = 0
			return
		}

		if !pathfind.HasFreeNeighbour(g.board, g.head, &g.trail) {
			g.respawn(ReasonNoValidMoves)
			return
		}
		if !pathfind.RemainingReachable(g.board, g.head, &g.trail, g.board.TotalFree(), g.length) {
			g.respawn(ReasonPathBlocked)
			return
		}
	}
}

// moveOne pops a queued turn and moves the head one cell.
func (g *Game) moveOne() bool {
	if len(g.queue) > 0 {
		g.want = g.queue[0]
		g.queue = g.queue[1:]
	}
	g.dir = g.want

	next := g.head.Add(g.dir.X, g.dir.Y)
	if !g.board.IsFree(next.X, next.Y) {
		g.respawn(ReasonHitWall)
		return false
	}
	if g.trail.Has(next) {
		g.respawn(ReasonHitTrail)
		return false
	}

	g.head = next
	g.trail.add(next)
	g.length++
	g.maxY = max(g.maxY, next.Y)
	return true
}

// respawn costs a life and restarts at the entry of the newest chunk. Every
// free cell of the older chunks counts as filled, whether or not the snake
// had covered it.
func (g *Game) respawn(reason string) {
	g.lives = max(0, g.lives-1)
	if g.lives <= 0 {
		g.die(fmt.Sprintf("OUT OF LIVES (%s)", reason))
		return
	}

	latest := max(0, g.board.Revealed()-1)
	g.head = g.board.EntryPoint(latest)
	g.maxY = max(g.maxY, g.head.Y)
	g.dir = DirLeft
	g.want = g.dir

	g.trail.reset()
	for c := 0; c < latest; c++ {
		g.board.Chunk(c).ForEachFree(func(x, y int) {
			g.trail.add(core.Point{X: x, Y: y})
		})
	}
	g.trail.add(g.head)
	g.length = g.trail.size()

	g.waiting = true
	g.waitReason = waitRespawn
	g.queue = g.queue[:0]
	g.accMs = 0
	g.lastRespawn = reason
	g.respawnCount++
	g.outbox.Push(core.EventRespawned, g.lives)
}

func (g *Game) die(reason string) {
	g.dead = true
	g.deathReason = reason
	g.waiting = false
	g.outbox.Push(core.EventDied, g.Score())
}

// ChunkLevel is the 1-based chunk the run has reached.
func (g *Game) ChunkLevel() int {
	h := g.board.ChunkHeight()
	return max(g.maxY/h, g.head.Y/h) + 1
}

// Score rewards depth first, then fill.
func (g *Game) Score() int {
	return max(0, (g.ChunkLevel()-1)*1000+g.length)
}

// FillPct is the filled share of the revealed free cells, rounded down.
func (g *Game) FillPct() int {
	total := g.board.TotalFree()
	if total == 0 {
		return 0
	}
	return 100 * g.length / total
}

// Board returns the current board.
func (g *Game) Board() *world.Board { return g.board }

// Head returns the head cell.
func (g *Game) Head() core.Point { return g.head }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Waiting reports whether the snake is holding still for a direction.
func (g *Game) Waiting() bool { return g.waiting }

// PollCounters returns how many expansions and respawns happened since the
// last poll and resets both.
func (g *Game) PollCounters() (expanded, respawned int) {
	expanded, respawned = g.expandedCount, g.respawnCount
	g.expandedCount, g.respawnCount = 0, 0
	return expanded, respawned
}

// DrainEvents hands the tick's events to the presentation layer.
func (g *Game) DrainEvents() []core.Event {
	return g.outbox.Drain()
}

// Summary describes the run for the leaderboard.
func (g *Game) Summary() core.RunSummary {
	return core.RunSummary{
		GameID:    g.ID(),
		Score:     g.Score(),
		Level:     g.ChunkLevel(),
		BestLevel: g.bestLevel,
		Height:    g.maxY + 1,
		FillPct:   g.FillPct(),
		Lives:     g.lives,
		Reason:    g.deathReason,
		Seed:      g.seed,
		Duration:  g.elapsed,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.dead,
		Paused:   g.paused,
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Seed: %#08x, Score: %d, Level: %d\n", g.tick, g.seed, g.Score(), g.ChunkLevel())
	fmt.Fprintf(&b, "Head: (%d, %d), Dir: %s, Queue: %d\n", g.head.X, g.head.Y, dirName(g.dir), len(g.queue))
	fmt.Fprintf(&b, "Len: %d/%d, Lives: %d, Revealed: %d\n", g.length, g.board.TotalFree(), g.lives, g.board.Revealed())
	fmt.Fprintf(&b, "Waiting: %v, Dead: %v (%s)\n", g.waiting, g.dead, g.deathReason)
	return b.String()
}

func dirName(d core.Point) string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// trail is the set of cells the snake has filled.
type trail struct {
	width int
	cells map[int]struct{}
}

func newTrail(width int) trail {
	return trail{width: width, cells: make(map[int]struct{})}
}

// Has reports whether p is filled. Cells off the board are never filled.
func (t *trail) Has(p core.Point) bool {
	if p.X < 0 || p.X >= t.width || p.Y < 0 {
		return false
	}
	_, ok := t.cells[p.Y*t.width+p.X]
	return ok
}

func (t *trail) add(p core.Point) {
	t.cells[p.Y*t.width+p.X] = struct{}{}
}

func (t *trail) reset() {
	clear(t.cells)
}

func (t *trail) size() int {
	return len(t.cells)
}
