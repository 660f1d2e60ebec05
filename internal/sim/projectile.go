package sim

import "github.com/jerecoder/cave-snake/internal/core"

// Projectile is a travelling fireball.
type Projectile struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Life   float64
	R      float64
	Damage int
}

// ProjectileResult says how a projectile's tick ended.
type ProjectileResult uint8

const (
	Flying ProjectileResult = iota
	HitWall
	HitTarget
	Expired
)

// Update moves the projectile and tests it against walls and a target
// circle. Anything but Flying means the projectile is spent.
func (p *Projectile) Update(dt float64, g Grid, target core.Vec2, targetR float64) ProjectileResult {
	p.Life -= dt
	if p.Life <= 0 {
		return Expired
	}
	delta := p.Vel.Scale(dt)
	n := max(1, int(delta.Len()/MaxSubStep)+1)
	step := delta.Scale(1 / float64(n))
	for i := 0; i < n; i++ {
		p.Pos = p.Pos.Add(step)
		if p.Pos.Dist(target) <= p.R+targetR {
			return HitTarget
		}
		if c := p.Pos.Cell(); !g.IsFree(c.X, c.Y) {
			return HitWall
		}
	}
	return Flying
}

// Spark is a short-lived impact flash.
type Spark struct {
	Pos  core.Vec2
	Life float64
}

// SparkLife is how long a spark is shown.
const SparkLife = 0.25

// PickupKind is what a pickup grants.
type PickupKind uint8

const (
	PickupHealth PickupKind = iota
	PickupAmmo
)

// Pickup is an item lying on the floor.
type Pickup struct {
	Pos    core.Vec2
	Kind   PickupKind
	Amount int
	Taken  bool
}

// PickupRadius is the reach for collecting a pickup.
const PickupRadius = 0.45

// Portal leads to the next floor once it is open.
type Portal struct {
	Pos  core.Vec2
	Open bool
	Spin float64
}

// PortalRadius is the reach for entering an open portal.
const PortalRadius = 0.5

// Reached reports whether a player at pos enters the portal.
func (p *Portal) Reached(pos core.Vec2) bool {
	return p.Open && p.Pos.Dist(pos) <= PortalRadius
}
