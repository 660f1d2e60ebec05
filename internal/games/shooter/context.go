package shooter

import (
	"fmt"
	"math"

	"github.com/jerecoder/cave-snake/internal/config"
	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/gen"
	"github.com/jerecoder/cave-snake/internal/pathfind"
	"github.com/jerecoder/cave-snake/internal/rng"
	"github.com/jerecoder/cave-snake/internal/sim"
	"github.com/jerecoder/cave-snake/internal/world"
)

// FloorResult says how a floor update ended.
type FloorResult uint8

const (
	FloorContinue FloorResult = iota
	FloorCleared
	FloorDied
)

// spawnPos is where the player enters every floor: the centre of the 2x2
// spawn pocket.
var spawnPos = core.V(2, 2)

// Context owns everything that lives on one floor. It is rebuilt from
// scratch for each floor; only the player carries over.
type Context struct {
	Floor       int
	Level       *world.Level
	Maze        *gen.Maze
	Player      *Player
	Enemies     []*sim.Enemy
	Boss        *sim.Boss
	Projectiles []sim.Projectile
	Sparks      []sim.Spark
	Pickups     []sim.Pickup
	Portal      sim.Portal
	Aura        sim.Aura
	Kills       int
	Score       int // gained on this floor
	Time        float64
	Outbox      core.Outbox

	cfg  *config.ShooterConfig
	diff *config.DifficultyManager
	rng  *rng.Rand
}

// NewContext generates floor n (1-based) for seed and places the player at
// the spawn pocket. score is the run score so far, which feeds the
// difficulty ramp.
func NewContext(floor int, seed uint32, score int, player *Player, cfg *config.ShooterConfig, diff *config.DifficultyManager) (*Context, error) {
	r := rng.New(rng.Mix(seed, floor))

	mp := gen.MazeParams{Width: cfg.Floor.Width, Height: cfg.Floor.Height}
	cw, ch := mp.LogicalSize()
	mp.Loops = gen.LoopsForFloor(floor-1, cw*ch)
	if err := mp.Validate(); err != nil {
		return nil, fmt.Errorf("shooter: floor %d: %w", floor, err)
	}
	maze := gen.GenerateMaze(r, mp)

	c, err := newContext(floor, maze.Lines, player, cfg, diff, r)
	if err != nil {
		return nil, err
	}
	c.Maze = maze
	c.populate(score)
	return c, nil
}

// newContext loads lines into a level and resets the player onto it,
// without spawning anything.
func newContext(floor int, lines []string, player *Player, cfg *config.ShooterConfig, diff *config.DifficultyManager, r *rng.Rand) (*Context, error) {
	level := &world.Level{}
	if err := level.Load(lines); err != nil {
		return nil, fmt.Errorf("shooter: floor %d: %w", floor, err)
	}

	player.Pos = spawnPos
	player.Angle = 0
	if pos, ok := sim.NudgeOut(level, player.Pos, player.Radius); ok {
		player.Pos = pos
	}

	return &Context{
		Floor:  floor,
		Level:  level,
		Player: player,
		cfg:    cfg,
		diff:   diff,
		rng:    r,
	}, nil
}

// populate places the portal in the cell farthest from the player, then
// enemies beyond the spawn clearance, the boss on boss floors, and
// pickups anywhere else.
func (c *Context) populate(score int) {
	w, h := c.Level.Width(), c.Level.Height()
	start := c.Player.Pos.Cell()
	dist := pathfind.Distances(c.Level, w, h, start)

	var far, near []core.Point
	farthest, best := start, 0
	for i, d := range dist {
		p := core.Point{X: i % w, Y: i / w}
		if d > best {
			best, farthest = d, p
		}
		switch {
		case d >= c.cfg.Floor.SpawnClearance:
			far = append(far, p)
		case d >= 2:
			near = append(near, p)
		}
	}
	c.rng.Shuffle(len(far), func(i, j int) { far[i], far[j] = far[j], far[i] })
	c.rng.Shuffle(len(near), func(i, j int) { near[i], near[j] = near[j], near[i] })

	c.Portal = sim.Portal{Pos: farthest.Center()}

	n := c.diff.Enemies(c.cfg.Floor.BaseEnemies, c.cfg.Floor.MaxEnemies, c.Floor, score)
	if c.IsBossFloor() {
		n /= 2
		c.Boss = sim.NewBoss(farthest.Center(), c.cfg.Boss)
	}

	stats := c.cfg.Enemy
	stats.Speed = c.diff.Speed(stats.Speed, c.Floor, score)
	stats.AttackDamage = c.diff.Damage(stats.AttackDamage, c.Floor, score)

	for _, p := range far {
		if len(c.Enemies) >= n {
			break
		}
		if p == farthest {
			continue
		}
		c.Enemies = append(c.Enemies, sim.NewEnemy(p.Center(), stats))
	}

	spots := append(near, far[min(len(far), len(c.Enemies)+1):]...)
	add := func(kind sim.PickupKind, count, amount int) {
		for count > 0 && len(spots) > 0 {
			p := spots[0]
			spots = spots[1:]
			if p == farthest {
				continue
			}
			c.Pickups = append(c.Pickups, sim.Pickup{Pos: p.Center(), Kind: kind, Amount: amount})
			count--
		}
	}
	add(sim.PickupHealth, c.cfg.Floor.HealthPickups, c.cfg.Player.PickupHealth)
	add(sim.PickupAmmo, c.cfg.Floor.AmmoPickups, c.cfg.Player.PickupAmmo)
}

// IsBossFloor reports whether this floor has a boss.
func (c *Context) IsBossFloor() bool {
	return c.Floor%c.cfg.Floor.BossEvery == 0
}

// EnemiesLeft counts live enemies, the boss included.
func (c *Context) EnemiesLeft() int {
	n := 0
	for _, e := range c.Enemies {
		if e.Alive() {
			n++
		}
	}
	if c.Boss != nil && c.Boss.Alive() {
		n++
	}
	return n
}

// Update advances the floor by dt seconds in the fixed order: player,
// enemies, boss, projectiles, pickups, portal.
func (c *Context) Update(dt float64, in core.Intent) FloorResult {
	c.Time += dt
	p := c.Player
	p.tick(dt)

	c.movePlayer(dt, in)
	if in.Weapon > 0 && in.Weapon <= len(c.cfg.Weapons) {
		p.Weapon = in.Weapon - 1
	}
	if in.Fire {
		c.fire()
	}

	for _, e := range c.Enemies {
		if e.Update(dt, c.Level, p.Pos) {
			c.hurtPlayer(e.Stats.AttackDamage)
		}
	}

	c.Aura = sim.Aura{}
	if c.Boss != nil {
		tick := c.Boss.Update(dt, c.Level, p.Pos, p.Angle)
		c.Projectiles = append(c.Projectiles, tick.Fired...)
		if tick.PhaseChanged {
			c.Outbox.Push(core.EventBossPhaseChanged, c.Boss.Phase)
		}
		c.Aura = tick.Aura
	}

	c.updateProjectiles(dt)
	c.updateSparks(dt)
	c.collectPickups()

	if p.Dead() {
		return FloorDied
	}

	c.Portal.Open = c.EnemiesLeft() == 0
	c.Portal.Spin += dt * 2
	if c.Portal.Reached(p.Pos) {
		c.Score += c.cfg.Floor.FloorScore
		c.Outbox.Push(core.EventLevelComplete, c.Floor)
		return FloorCleared
	}
	return FloorContinue
}

// movePlayer turns and walks the player. Disorientation adds a slow drift
// to the heading.
func (c *Context) movePlayer(dt float64, in core.Intent) {
	p := c.Player
	pc := c.cfg.Player

	turn := in.Turn * pc.TurnSpeed * dt
	if c.Aura.Disorient > 0 {
		turn += c.Aura.Disorient * pc.DisorientTurn * math.Sin(c.Time*2.3) * dt
	}
	p.Angle = core.WrapAngle(p.Angle + turn)

	fwd := p.Forward()
	move := fwd.Scale(in.Forward).Add(fwd.Perp().Scale(in.Strafe))
	if move.Len() == 0 {
		return
	}
	move = move.Norm().Scale(pc.MoveSpeed * dt)
	p.Pos = sim.MoveCircle(c.Level, p.Pos, move, p.Radius)
	if pos, ok := sim.NudgeOut(c.Level, p.Pos, p.Radius); ok {
		p.Pos = pos
	}
}

// hurtPlayer applies damage unless the player is still in the damage
// cooldown from the previous hit.
func (c *Context) hurtPlayer(n int) {
	p := c.Player
	if p.hurtCD > 0 || p.Dead() {
		return
	}
	p.HP = max(0, p.HP-n)
	p.hurtCD = c.cfg.Player.HurtCooldown
	p.Hurt = 0.2
	c.Outbox.Push(core.EventPlayerHit, n)
}

// targets lists what a shot can hit: enemies first, the boss last.
func (c *Context) targets() []sim.Entity {
	out := make([]sim.Entity, 0, len(c.Enemies)+1)
	for _, e := range c.Enemies {
		out = append(out, e)
	}
	if c.Boss != nil {
		out = append(out, c.Boss)
	}
	return out
}

func (c *Context) updateProjectiles(dt float64) {
	p := c.Player
	kept := c.Projectiles[:0]
	for _, pr := range c.Projectiles {
		switch pr.Update(dt, c.Level, p.Pos, p.Radius) {
		case sim.Flying:
			kept = append(kept, pr)
		case sim.HitTarget:
			c.hurtPlayer(pr.Damage)
		case sim.HitWall:
			c.Sparks = append(c.Sparks, sim.Spark{Pos: pr.Pos, Life: sim.SparkLife})
		}
	}
	c.Projectiles = kept
}

func (c *Context) updateSparks(dt float64) {
	kept := c.Sparks[:0]
	for _, s := range c.Sparks {
		s.Life -= dt
		if s.Life > 0 {
			kept = append(kept, s)
		}
	}
	c.Sparks = kept
}

func (c *Context) collectPickups() {
	p := c.Player
	for i := range c.Pickups {
		pk := &c.Pickups[i]
		if pk.Taken || pk.Pos.Dist(p.Pos) > sim.PickupRadius+p.Radius {
			continue
		}
		switch pk.Kind {
		case sim.PickupHealth:
			if p.HP >= p.MaxHP {
				continue
			}
			p.heal(pk.Amount)
		case sim.PickupAmmo:
			if p.Ammo >= c.cfg.Player.MaxAmmo {
				continue
			}
			p.Ammo = min(c.cfg.Player.MaxAmmo, p.Ammo+pk.Amount)
		}
		pk.Taken = true
		c.Outbox.Push(core.EventPickupTaken, int(pk.Kind))
	}
}
