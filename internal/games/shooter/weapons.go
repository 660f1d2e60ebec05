package shooter

import (
	"math"

	"github.com/jerecoder/cave-snake/internal/config"
	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/sim"
)

// pelletAngles fans n pellets evenly across a cone of spread degrees,
// centred on the view direction.
func pelletAngles(n int, spread float64) []float64 {
	out := make([]float64, n)
	if n == 1 || spread <= 0 {
		return out
	}
	cone := spread * math.Pi / 180
	for i := range out {
		out[i] = -cone/2 + cone*float64(i)/float64(n-1)
	}
	return out
}

// Weapon returns the player's current weapon.
func (c *Context) Weapon() config.WeaponConfig {
	return c.cfg.Weapons[c.Player.Weapon]
}

// fire shoots the current weapon if it is off cooldown and the player can
// pay its ammo cost. It reports whether a shot went out.
func (c *Context) fire() bool {
	p := c.Player
	w := c.Weapon()
	if p.fireCD > 0 || p.Ammo < w.AmmoCost {
		return false
	}
	p.Ammo -= w.AmmoCost
	p.fireCD = w.Cooldown
	c.Outbox.Push(core.EventShotFired, p.Weapon+1)

	targets := c.targets()
	for _, a := range pelletAngles(w.Pellets, w.Spread) {
		dir := core.FromAngle(p.Angle + a)
		shot := sim.Hitscan(c.Level, p.Pos, dir, targets, w.Range)
		if !shot.Hit() {
			if !math.IsInf(shot.Dist, 1) {
				c.Sparks = append(c.Sparks, sim.Spark{Pos: shot.Point.Sub(dir.Scale(0.05)), Life: sim.SparkLife})
			}
			continue
		}
		if !shot.Target.TakeDamage(w.Damage) {
			continue
		}
		if _, boss := shot.Target.(*sim.Boss); boss {
			c.Score += c.cfg.Floor.BossScore
			c.Outbox.Push(core.EventBossDefeated, c.Floor)
			continue
		}
		c.Kills++
		c.Score += c.cfg.Floor.KillScore
		c.Outbox.Push(core.EventEnemyKilled, c.Kills)
	}
	return true
}
