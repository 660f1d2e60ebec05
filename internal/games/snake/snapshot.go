package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StateRunning       GameStateType = "running"
	StateAwaitingInput GameStateType = "awaiting_input"
	StatePaused        GameStateType = "paused"
	StateDead          GameStateType = "dead"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Seed     uint32
	Score    int
	Level    int // chunk level, 1-based
	Revealed int
	Len      int
	Lives    int
	HeadX    int
	HeadY    int
	DirX     int
	DirY     int
	Queued   int
	FillPct  int
	Reason   string
	State    GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StateRunning
	switch {
	case g.dead:
		state = StateDead
	case g.paused:
		state = StatePaused
	case g.waiting:
		state = StateAwaitingInput
	}

	reason := g.deathReason
	if reason == "" {
		reason = g.lastRespawn
	}

	return Snapshot{
		Tick:     g.tick,
		Seed:     g.seed,
		Score:    g.Score(),
		Level:    g.ChunkLevel(),
		Revealed: g.board.Revealed(),
		Len:      g.length,
		Lives:    g.lives,
		HeadX:    g.head.X,
		HeadY:    g.head.Y,
		DirX:     g.dir.X,
		DirY:     g.dir.Y,
		Queued:   len(g.queue),
		FillPct:  g.FillPct(),
		Reason:   reason,
		State:    state,
	}
}
