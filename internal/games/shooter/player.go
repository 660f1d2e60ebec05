package shooter

import (
	"github.com/jerecoder/cave-snake/internal/config"
	"github.com/jerecoder/cave-snake/internal/core"
)

// Player is the first-person agent. It survives floor transitions.
type Player struct {
	Pos    core.Vec2
	Angle  float64
	HP     int
	MaxHP  int
	Ammo   int
	Weapon int // index into the weapon list
	Radius float64
	Hurt   float64 // flash timer after taking damage

	fireCD float64
	hurtCD float64
}

// NewPlayer creates a player with full health and starting ammo.
func NewPlayer(cfg config.ShooterPlayer) *Player {
	return &Player{
		HP:     cfg.HP,
		MaxHP:  cfg.HP,
		Ammo:   cfg.StartingAmmo,
		Radius: cfg.Radius,
	}
}

// Forward returns the unit view direction.
func (p *Player) Forward() core.Vec2 {
	return core.FromAngle(p.Angle)
}

// Dead reports whether the player has no health left.
func (p *Player) Dead() bool {
	return p.HP <= 0
}

// heal adds n health up to the maximum and reports how much was applied.
func (p *Player) heal(n int) int {
	before := p.HP
	p.HP = min(p.MaxHP, p.HP+n)
	return p.HP - before
}

func (p *Player) tick(dt float64) {
	p.fireCD = max(0, p.fireCD-dt)
	p.hurtCD = max(0, p.hurtCD-dt)
	p.Hurt = max(0, p.Hurt-dt)
}
