package sim

import (
	"math"

	"github.com/jerecoder/cave-snake/internal/core"
)

// BossState is the boss life cycle.
type BossState uint8

const (
	BossAlive BossState = iota
	BossDefeated
)

// BossStats are the boss tunables.
type BossStats struct {
	HP             int     `yaml:"hp"`
	Radius         float64 `yaml:"radius"`
	Speed          float64 `yaml:"speed"`
	OrbitRadius    float64 `yaml:"orbit_radius"`
	KeepAway       float64 `yaml:"keep_away"`
	LateralAmp     float64 `yaml:"lateral_amp"`
	LateralPeriod  float64 `yaml:"lateral_period"`
	AuraInner      float64 `yaml:"aura_inner"`
	AuraOuter      float64 `yaml:"aura_outer"`
	TeleportEvery  float64 `yaml:"teleport_every"`
	MinSeparation  float64 `yaml:"min_separation"`
	FireEvery      float64 `yaml:"fire_every"`
	FireballSpeed  float64 `yaml:"fireball_speed"`
	FireballDamage int     `yaml:"fireball_damage"`
	FireballRadius float64 `yaml:"fireball_radius"`
	FireballLife   float64 `yaml:"fireball_life"`
}

// DefaultBossStats returns the floor boss.
func DefaultBossStats() BossStats {
	return BossStats{
		HP:             40,
		Radius:         0.42,
		Speed:          1.3,
		OrbitRadius:    2.2,
		KeepAway:       2.5,
		LateralAmp:     1.2,
		LateralPeriod:  3.2,
		AuraInner:      2.5,
		AuraOuter:      5,
		TeleportEvery:  7,
		MinSeparation:  2,
		FireEvery:      1.8,
		FireballSpeed:  3.2,
		FireballDamage: 10,
		FireballRadius: 0.18,
		FireballLife:   4,
	}
}

// Aura is the effect the boss has on a nearby player, both in [0,1].
type Aura struct {
	Impair    float64 // view darkening
	Disorient float64 // view sway and turn noise
}

// BossTick reports what happened during one boss update.
type BossTick struct {
	Fired        []Projectile
	Teleported   bool
	PhaseChanged bool
	Aura         Aura
}

// Boss orbits an anchor, harasses the player with fireballs and blinks
// behind them.
type Boss struct {
	Pos    core.Vec2
	Anchor core.Vec2
	HP     int
	State  BossState
	Phase  int // 0 healthy, 1 below two thirds, 2 below one third
	Stats  BossStats
	Hurt   float64

	t          float64
	orbit      float64
	teleportCD float64
	fireCD     float64
}

// NewBoss creates a boss orbiting anchor.
func NewBoss(anchor core.Vec2, stats BossStats) *Boss {
	return &Boss{
		Pos:        anchor,
		Anchor:     anchor,
		HP:         stats.HP,
		Stats:      stats,
		teleportCD: stats.TeleportEvery,
		fireCD:     stats.FireEvery,
	}
}

func (b *Boss) Position() core.Vec2 { return b.Pos }
func (b *Boss) Radius() float64 { return b.Stats.Radius }
func (b *Boss) Alive() bool { return b.State == BossAlive }

// TakeDamage applies damage; at zero HP the boss is defeated.
func (b *Boss) TakeDamage(n int) bool {
	if b.State != BossAlive {
		return false
	}
	b.HP -= n
	b.Hurt = 0.15
	if b.HP <= 0 {
		b.HP = 0
		b.State = BossDefeated
		return true
	}
	return false
}

// HealthFrac returns remaining HP as a fraction.
func (b *Boss) HealthFrac() float64 {
	if b.Stats.HP <= 0 {
		return 0
	}
	return float64(b.HP) / float64(b.Stats.HP)
}

func (b *Boss) phaseFor() int {
	f := b.HealthFrac()
	switch {
	case f <= 1.0/3:
		return 2
	case f <= 2.0/3:
		return 1
	}
	return 0
}

// AuraAt returns the aura felt at distance d. Effects grow as the boss
// loses health.
func (b *Boss) AuraAt(d float64) Aura {
	if b.State != BossAlive {
		return Aura{}
	}
	rage := 1 + (1 - b.HealthFrac())
	var a Aura
	switch {
	case d <= b.Stats.AuraInner:
		a = Aura{Impair: 0.35, Disorient: 0.3}
	case d <= b.Stats.AuraOuter:
		a = Aura{Impair: 0.15}
		if b.Phase >= 1 {
			a.Disorient = 0.1
		}
	default:
		return Aura{}
	}
	a.Impair = math.Min(1, a.Impair*rage)
	a.Disorient = math.Min(1, a.Disorient*rage)
	return a
}

// teleportOffsets are candidate positions relative to the player, in
// (behind, right) units of the player's facing, best first.
var teleportOffsets = [...]core.Vec2{
	{X: 3, Y: 0}, {X: 2.5, Y: 1}, {X: 2.5, Y: -1}, {X: 2, Y: 0},
	{X: 2, Y: 1.5}, {X: 2, Y: -1.5}, {X: 4, Y: 0}, {X: 1.5, Y: 0},
}

// TeleportBehind moves the boss to the first ranked candidate behind the
// player that keeps MinSeparation and is not blocked.
func (b *Boss) TeleportBehind(g Grid, player core.Vec2, facing float64) bool {
	fwd := core.FromAngle(facing)
	right := fwd.Perp()
	for _, o := range teleportOffsets {
		cand := player.Sub(fwd.Scale(o.X)).Add(right.Scale(o.Y))
		if cand.Dist(player) < b.Stats.MinSeparation || Blocked(g, cand, b.Stats.Radius) {
			continue
		}
		b.Pos = cand
		return true
	}
	return false
}

// Update advances the boss by dt seconds.
func (b *Boss) Update(dt float64, g Grid, player core.Vec2, facing float64) BossTick {
	var out BossTick
	if b.State != BossAlive {
		return out
	}
	b.t += dt
	b.Hurt = max(0, b.Hurt-dt)

	if p := b.phaseFor(); p != b.Phase {
		b.Phase = p
		out.PhaseChanged = true
	}

	// orbit the anchor, side-stepping relative to the player
	b.orbit += dt * (0.45 + 0.2*float64(b.Phase))
	want := b.Anchor.Add(core.FromAngle(b.orbit).Scale(b.Stats.OrbitRadius))
	toPlayer := player.Sub(b.Pos)
	side := 1.0
	if math.Sin(2*math.Pi*b.t/b.Stats.LateralPeriod) < 0 {
		side = -1
	}
	want = want.Add(toPlayer.Norm().Perp().Scale(side * b.Stats.LateralAmp))
	if d := toPlayer.Len(); d < b.Stats.KeepAway {
		want = want.Sub(toPlayer.Norm().Scale(b.Stats.KeepAway - d))
	}
	to := want.Sub(b.Pos)
	step := min(b.Stats.Speed*(1+0.25*float64(b.Phase))*dt, to.Len())
	b.Pos = MoveCircle(g, b.Pos, to.Norm().Scale(step), b.Stats.Radius)

	b.teleportCD -= dt
	if b.teleportCD <= 0 {
		out.Teleported = b.TeleportBehind(g, player, facing)
		b.teleportCD = b.Stats.TeleportEvery * (1 - 0.2*float64(b.Phase))
	}

	b.fireCD -= dt
	if b.fireCD <= 0 {
		b.fireCD = b.Stats.FireEvery * (1 - 0.15*float64(b.Phase))
		aim := player.Sub(b.Pos).Angle()
		spread := []float64{0}
		if b.Phase >= 1 {
			spread = []float64{-0.18, 0, 0.18}
		}
		for _, s := range spread {
			out.Fired = append(out.Fired, Projectile{
				Pos:    b.Pos,
				Vel:    core.FromAngle(aim + s).Scale(b.Stats.FireballSpeed),
				Life:   b.Stats.FireballLife,
				R:      b.Stats.FireballRadius,
				Damage: b.Stats.FireballDamage,
			})
		}
	}

	out.Aura = b.AuraAt(b.Pos.Dist(player))
	return out
}
