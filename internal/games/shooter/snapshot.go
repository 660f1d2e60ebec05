package shooter

// GameStateType represents the current game state.
type GameStateType string

const (
	StateRunning GameStateType = "running"
	StatePaused  GameStateType = "paused"
	StateDead    GameStateType = "dead"
	StateError   GameStateType = "error"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Seed        uint32
	Floor       int
	Score       int
	Kills       int
	HP          int
	Ammo        int
	Weapon      int
	PosX        float64
	PosY        float64
	Angle       float64
	EnemiesLeft int
	Projectiles int
	PortalOpen  bool
	State       GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.err != nil || g.ctx == nil {
		return Snapshot{Tick: g.tick, Seed: g.seed, State: StateError}
	}
	state := StateRunning
	switch {
	case g.dead:
		state = StateDead
	case g.paused:
		state = StatePaused
	}

	p := g.player
	return Snapshot{
		Tick:        g.tick,
		Seed:        g.seed,
		Floor:       g.ctx.Floor,
		Score:       g.Score(),
		Kills:       g.Kills(),
		HP:          p.HP,
		Ammo:        p.Ammo,
		Weapon:      p.Weapon,
		PosX:        p.Pos.X,
		PosY:        p.Pos.Y,
		Angle:       p.Angle,
		EnemiesLeft: g.ctx.EnemiesLeft(),
		Projectiles: len(g.ctx.Projectiles),
		PortalOpen:  g.ctx.Portal.Open,
		State:       state,
	}
}
