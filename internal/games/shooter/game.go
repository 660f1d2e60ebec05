package shooter

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/jerecoder/cave-snake/internal/config"
	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/raycast"
	"github.com/jerecoder/cave-snake/internal/registry"
	"github.com/jerecoder/cave-snake/internal/rng"
)

// Game implements Maze Raider: clear each maze floor of enemies, then take
// the portal down to the next one. Every few floors a boss guards it.
type Game struct {
	cfg      config.ShooterConfig
	fixedCfg bool
	preset   config.DifficultyPreset // empty means normal
	diff     *config.DifficultyManager

	seed    uint32
	seedRng *rng.Rand
	ctx     *Context
	player  *Player
	tex     raycast.Textures
	err     error

	tick    uint64
	dt      time.Duration
	elapsed time.Duration

	score     int // banked from finished floors
	kills     int // banked from finished floors
	bestFloor int

	dead        bool
	deathReason string
	paused      bool
	tooSmall    bool
	showMap     bool

	renderer *raycast.Renderer
	frame    *image.RGBA

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

// New creates a Maze Raider game that loads its configuration on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.ShooterConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register("shooter", func() registry.Game {
		return New()
	})
}

var (
	_ registry.Game        = (*Game)(nil)
	_ registry.EventSource = (*Game)(nil)
	_ registry.Summarizer  = (*Game)(nil)
	_ registry.Tunable     = (*Game)(nil)
	_ registry.InputHolder = (*Game)(nil)
)

// ID returns the game identifier.
func (g *Game) ID() string {
	return "shooter"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Maze Raider"
}

// Reset starts a new run on floor 1.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.fixedCfg {
		c, err := config.LoadShooter(configPath)
		if err != nil {
			c = config.DefaultShooterConfig()
		}
		preset := g.preset
		if preset == "" {
			preset = config.DifficultyNormal
		}
		config.ApplyShooterPreset(&c, preset)
		g.cfg = c
	}
	g.dt = cfg.TickDuration()
	g.seed = rng.FromInt64(cfg.Seed)
	g.seedRng = rng.New(g.seed ^ 0x5a5a5a5a)
	g.bestFloor = 1
	g.tick = 0
	g.renderer = nil
	g.frame = nil
	g.outbox.Drain()

	g.err = g.cfg.Validate()
	if g.err == nil {
		g.tex, g.err = raycast.DefaultTextures(g.cfg.Render.TextureSize, g.seed)
	}
	if g.err != nil {
		return
	}
	g.restart(g.seed)
}

// restart begins a fresh run for seed.
func (g *Game) restart(seed uint32) {
	g.seed = seed
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)
	g.player = NewPlayer(g.cfg.Player)
	g.score = 0
	g.kills = 0
	g.elapsed = 0
	g.dead = false
	g.deathReason = ""
	g.paused = false
	g.enterFloor(1)
}

// enterFloor builds floor n around the current player.
func (g *Game) enterFloor(n int) {
	if g.ctx != nil {
		for _, e := range g.ctx.Outbox.Drain() {
			g.outbox.Push(e.Kind, e.Value)
		}
	}
	ctx, err := NewContext(n, g.seed, g.score, g.player, &g.cfg, g.diff)
	if err != nil {
		g.err = err
		return
	}
	g.ctx = ctx
	g.bestFloor = max(g.bestFloor, n)
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	if g.err != nil {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionNewMap) || (input.Has(core.ActionRestart) && g.dead) {
		g.restart(g.seedRng.Uint32())
		return core.StepResult{State: g.State()}
	}
	if input.Has(core.ActionTogglePath) {
		g.showMap = !g.showMap
		g.outbox.Push(core.EventPathToggled, boolInt(g.showMap))
	}
	if input.Has(core.ActionPause) && !g.dead {
		g.paused = !g.paused
	}
	if g.dead || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.elapsed += g.dt
	switch g.ctx.Update(g.dt.Seconds(), core.IntentFromFrame(input)) {
	case FloorCleared:
		g.bank()
		g.enterFloor(g.ctx.Floor + 1)
	case FloorDied:
		g.die()
	}
	return core.StepResult{State: g.State()}
}

// bank moves the floor's score and kills into the run totals.
func (g *Game) bank() {
	g.score += g.ctx.Score
	g.kills += g.ctx.Kills
	g.ctx.Score, g.ctx.Kills = 0, 0
}

func (g *Game) die() {
	g.bank()
	g.dead = true
	g.deathReason = fmt.Sprintf("KILLED ON FLOOR %d", g.ctx.Floor)
	g.outbox.Push(core.EventDied, g.score)
}

// Score returns the run score including the current floor.
func (g *Game) Score() int {
	if g.ctx == nil {
		return g.score
	}
	return g.score + g.ctx.Score
}

// Kills returns enemies killed this run.
func (g *Game) Kills() int {
	if g.ctx == nil {
		return g.kills
	}
	return g.kills + g.ctx.Kills
}

// Floor returns the current floor, 1-based.
func (g *Game) Floor() int {
	if g.ctx == nil {
		return 0
	}
	return g.ctx.Floor
}

// Context exposes the current floor.
func (g *Game) Context() *Context { return g.ctx }

// Player exposes the player.
func (g *Game) Player() *Player { return g.player }

// Err reports a configuration or texture error that stops the game.
func (g *Game) Err() error { return g.err }

// DrainEvents hands the tick's events to the presentation layer.
func (g *Game) DrainEvents() []core.Event {
	if g.ctx != nil {
		for _, e := range g.ctx.Outbox.Drain() {
			g.outbox.Push(e.Kind, e.Value)
		}
	}
	return g.outbox.Drain()
}

// Summary describes the run for the leaderboard.
func (g *Game) Summary() core.RunSummary {
	floor := g.Floor()
	hp := 0
	if g.player != nil {
		hp = g.player.HP
	}
	return core.RunSummary{
		GameID:    g.ID(),
		Score:     g.Score(),
		Level:     floor,
		BestLevel: g.bestFloor,
		Height:    max(0, floor-1),
		Lives:     hp,
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

// HoldsInput reports that movement and fire are read as held keys.
func (g *Game) HoldsInput() bool { return true }

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	if g.ctx == nil {
		return fmt.Sprintf("Error: %v\n", g.err)
	}
	var b strings.Builder
	p := g.player
	fmt.Fprintf(&b, "Tick: %d, Seed: %#08x, Floor: %d, Score: %d\n", g.tick, g.seed, g.ctx.Floor, g.Score())
	fmt.Fprintf(&b, "Player: (%.2f, %.2f) angle %.2f, HP %d, Ammo %d, Weapon %d\n", p.Pos.X, p.Pos.Y, p.Angle, p.HP, p.Ammo, p.Weapon)
	fmt.Fprintf(&b, "Enemies left: %d, Projectiles: %d, Portal open: %v\n", g.ctx.EnemiesLeft(), len(g.ctx.Projectiles), g.ctx.Portal.Open)
	fmt.Fprintf(&b, "Dead: %v (%s)\n", g.dead, g.deathReason)
	return b.String()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
