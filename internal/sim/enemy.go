package sim

import (
	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/pathfind"
)

// EnemyState is the enemy behaviour state.
type EnemyState uint8

const (
	EnemyIdle EnemyState = iota
	EnemyPursuing
)

func (s EnemyState) String() string {
	if s == EnemyPursuing {
		return "pursuing"
	}
	return "idle"
}

// EnemyStats are the tunables shared by every enemy of a floor.
type EnemyStats struct {
	HP             int     `yaml:"hp"`
	Speed          float64 `yaml:"speed"`
	Radius         float64 `yaml:"radius"`
	DetectRadius   float64 `yaml:"detect_radius"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackDamage   int     `yaml:"attack_damage"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	ReplanCooldown float64 `yaml:"replan_cooldown"`
}

// DefaultEnemyStats returns the baseline grunt.
func DefaultEnemyStats() EnemyStats {
	return EnemyStats{
		HP:             3,
		Speed:          1.6,
		Radius:         0.28,
		DetectRadius:   7,
		AttackRange:    0.85,
		AttackDamage:   8,
		AttackCooldown: 0.9,
		ReplanCooldown: 0.45,
	}
}

// ArriveEpsilon is how close an enemy must get to its step target before
// it asks for the next one.
const ArriveEpsilon = 0.12

// Enemy is a melee grunt that chases the player through the maze.
type Enemy struct {
	Pos    core.Vec2
	Facing float64
	HP     int
	State  EnemyState
	Stats  EnemyStats
	Hurt   float64 // hit flash timer

	step     core.Vec2
	hasStep  bool
	replanCD float64
	attackCD float64
	lastGoal core.Point
	planned  bool // at least one plan was attempted
}

// NewEnemy places an enemy at pos.
func NewEnemy(pos core.Vec2, stats EnemyStats) *Enemy {
	return &Enemy{Pos: pos, HP: stats.HP, Stats: stats}
}

func (e *Enemy) Position() core.Vec2 { return e.Pos }
func (e *Enemy) Radius() float64 { return e.Stats.Radius }
func (e *Enemy) Alive() bool { return e.HP > 0 }

// TakeDamage applies damage and reports whether the enemy died.
func (e *Enemy) TakeDamage(n int) bool {
	if e.HP <= 0 {
		return false
	}
	e.HP -= n
	e.Hurt = 0.15
	return e.HP <= 0
}

// StepTarget returns the cell centre the enemy is currently walking to.
func (e *Enemy) StepTarget() (core.Vec2, bool) {
	return e.step, e.hasStep
}

// Update advances the enemy by dt seconds and reports whether it landed a
// melee attack on the player this tick.
func (e *Enemy) Update(dt float64, g Grid, player core.Vec2) bool {
	if !e.Alive() {
		return false
	}
	e.Hurt = max(0, e.Hurt-dt)
	e.attackCD = max(0, e.attackCD-dt)
	e.replanCD -= dt

	dist := e.Pos.Dist(player)
	if dist > e.Stats.DetectRadius {
		e.State = EnemyIdle
		e.hasStep = false
		return false
	}
	e.State = EnemyPursuing
	e.Facing = player.Sub(e.Pos).Angle()

	e.plan(g, player)

	if dist > e.Stats.AttackRange {
		target := player
		if e.hasStep {
			target = e.step
		}
		to := target.Sub(e.Pos)
		move := min(e.Stats.Speed*dt, to.Len())
		e.Pos = MoveCircle(g, e.Pos, to.Norm().Scale(move), e.Stats.Radius)
		return false
	}

	if e.attackCD == 0 {
		e.attackCD = e.Stats.AttackCooldown
		return true
	}
	return false
}

// plan refreshes the step target when the cooldown has elapsed, the
// player's cell changed or the enemy reached its step. Otherwise the
// previous target is kept, even if the player moved within its cell.
func (e *Enemy) plan(g Grid, player core.Vec2) {
	goal := player.Cell()
	arrived := e.hasStep && e.Pos.Dist(e.step) < ArriveEpsilon
	moved := goal != e.lastGoal

	if e.planned && !arrived && !moved && e.replanCD > 0 {
		return
	}

	e.planned = true
	e.lastGoal = goal
	e.replanCD = e.Stats.ReplanCooldown
	e.step, e.hasStep = pathfind.NextStep(g, e.Pos.Cell(), goal)
}
