package sim

import (
	"math"
	"testing"

	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/gen"
	"github.com/jerecoder/cave-snake/internal/rng"
	"github.com/jerecoder/cave-snake/internal/world"
)

func mustLevel(t *testing.T, lines ...string) *world.Level {
	t.Helper()
	var l world.Level
	if err := l.Load(lines); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return &l
}

var arena = []string{
	"1111111111",
	"1........1",
	"1........1",
	"1...11...1",
	"1........1",
	"1........1",
	"1111111111",
}

func TestBlocked(t *testing.T) {
	l := mustLevel(t, arena...)
	tests := []struct {
		name     string
		pos      core.Vec2
		r        float64
		expected bool
	}{
		{"open floor", core.V(2.5, 2.5), 0.3, false},
		{"touching west wall", core.V(1.2, 2.5), 0.3, true},
		{"diagonal into corner", core.V(1.25, 1.25), 0.3, true},
		{"next to pillar", core.V(3.5, 3.5), 0.3, false},
		{"overlapping pillar", core.V(3.8, 3.5), 0.3, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Blocked(l, tc.pos, tc.r); got != tc.expected {
				t.Errorf("Blocked(%v) = %v, expected %v", tc.pos, got, tc.expected)
			}
		})
	}
}

func TestMoveCircleSlides(t *testing.T) {
	l := mustLevel(t, arena...)
	start := core.V(1.5, 1.5)
	// Push diagonally into the north wall: Y is blocked, X slides.
	got := MoveCircle(l, start, core.V(1, -1), 0.3)
	if got.X <= start.X+0.9 {
		t.Errorf("expected to slide east along the wall, got %v", got)
	}
	if got.Y < 1.3-1e-9 {
		t.Errorf("circle entered the wall: %v", got)
	}
	if Blocked(l, got, 0.3) {
		t.Errorf("end position %v overlaps a wall", got)
	}
}

func TestMoveCircleNoTunnelling(t *testing.T) {
	l := mustLevel(t,
		"11111",
		"1.1.1",
		"11111",
	)
	got := MoveCircle(l, core.V(1.5, 1.5), core.V(5, 0), 0.2)
	if got.X >= 2 {
		t.Errorf("circle tunnelled through the wall to %v", got)
	}
}

func TestCollisionContainment(t *testing.T) {
	m := gen.GenerateMaze(rng.New(31), gen.MazeParams{Width: 25, Height: 25, Loops: 8})
	l := mustLevel(t, m.Lines...)
	r := rng.New(4)
	const radius = 0.3

	pos := m.Spawn.Center()
	for i := 0; i < 5000; i++ {
		delta := core.FromAngle(r.Range(-math.Pi, math.Pi)).Scale(r.Range(0, 0.6))
		pos = MoveCircle(l, pos, delta, radius)
		var ok bool
		pos, ok = NudgeOut(l, pos, radius)
		if !ok || Blocked(l, pos, radius) {
			t.Fatalf("move %d left the circle inside a wall at %v", i, pos)
		}
	}
}

func TestNudgeOut(t *testing.T) {
	l := mustLevel(t, arena...)
	stuck := core.V(1.1, 2.5)
	if !Blocked(l, stuck, 0.3) {
		t.Fatal("test position should start blocked")
	}
	got, ok := NudgeOut(l, stuck, 0.3)
	if !ok || Blocked(l, got, 0.3) {
		t.Errorf("NudgeOut = %v, %v; expected a free position", got, ok)
	}
	if got.Dist(stuck) > 0.5 {
		t.Errorf("NudgeOut moved %f, expected a short push", got.Dist(stuck))
	}

	solid := mustLevel(t, "111", "111", "111")
	if _, ok := NudgeOut(solid, core.V(1.5, 1.5), 0.3); ok {
		t.Error("NudgeOut should fail inside solid rock")
	}
}

func TestRayCircle(t *testing.T) {
	tests := []struct {
		name   string
		origin core.Vec2
		dir    core.Vec2
		centre core.Vec2
		r      float64
		dist   float64
		ok     bool
	}{
		{"head on", core.V(0, 0), core.V(1, 0), core.V(5, 0), 1, 4, true},
		{"grazing miss", core.V(0, 0), core.V(1, 0), core.V(5, 1.5), 1, 0, false},
		{"behind origin", core.V(0, 0), core.V(1, 0), core.V(-5, 0), 1, 0, false},
		{"inside", core.V(5, 0), core.V(1, 0), core.V(5, 0), 1, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := RayCircle(tc.origin, tc.dir, tc.centre, tc.r)
			if ok != tc.ok || math.Abs(d-tc.dist) > 1e-9 {
				t.Errorf("RayCircle = %f, %v; expected %f, %v", d, ok, tc.dist, tc.ok)
			}
		})
	}
}

func TestHitscanWallBeatsOffAxisEnemy(t *testing.T) {
	l := mustLevel(t,
		"11111111",
		"1.....11",
		"1......1",
		"1......1",
		"11111111",
	)
	origin := core.Point{X: 1, Y: 1}.Center()
	enemy := NewEnemy(core.V(4.5, 2.5), DefaultEnemyStats())

	shot := Hitscan(l, origin, core.V(1, 0), []Entity{enemy}, 32)
	if shot.Hit() {
		t.Fatalf("expected a wall hit, got target %v", shot.Target)
	}
	if !shot.Wall.OK || shot.Wall.Cell != (core.Point{X: 6, Y: 1}) {
		t.Errorf("wall cell = %v, expected (6,1)", shot.Wall.Cell)
	}
	if math.Abs(shot.Point.X-6) > 1e-9 {
		t.Errorf("spark point = %v, expected on x=6", shot.Point)
	}
}

func TestHitscanNearestTarget(t *testing.T) {
	l := mustLevel(t, arena...)
	near := NewEnemy(core.V(4.5, 1.5), DefaultEnemyStats())
	far := NewEnemy(core.V(7.5, 1.5), DefaultEnemyStats())
	dead := NewEnemy(core.V(3.0, 1.5), DefaultEnemyStats())
	dead.HP = 0

	shot := Hitscan(l, core.V(1.5, 1.5), core.V(1, 0), []Entity{far, dead, near}, 32)
	if shot.Target != near || shot.Index != 2 {
		t.Errorf("hit index %d, expected the near enemy at 2", shot.Index)
	}
}

func TestEnemyStates(t *testing.T) {
	l := mustLevel(t, arena...)
	stats := DefaultEnemyStats()
	stats.DetectRadius = 3
	e := NewEnemy(core.V(1.5, 1.5), stats)

	e.Update(0.1, l, core.V(8.5, 5.5))
	if e.State != EnemyIdle {
		t.Errorf("far player: state %v, expected idle", e.State)
	}

	start := e.Pos
	e.Update(0.1, l, core.V(3.5, 1.5))
	if e.State != EnemyPursuing {
		t.Errorf("near player: state %v, expected pursuing", e.State)
	}
	if e.Pos.X <= start.X {
		t.Errorf("pursuing enemy should move toward the player, moved to %v", e.Pos)
	}
}

func TestEnemyPursuesAroundPillar(t *testing.T) {
	l := mustLevel(t, arena...)
	e := NewEnemy(core.V(4.5, 2.5), DefaultEnemyStats())
	player := core.V(4.5, 4.5) // directly behind the pillar

	for i := 0; i < 200 && e.Pos.Dist(player) > e.Stats.AttackRange; i++ {
		e.Update(1.0/30, l, player)
		if Blocked(l, e.Pos, e.Stats.Radius) {
			t.Fatalf("enemy entered a wall at %v", e.Pos)
		}
	}
	if d := e.Pos.Dist(player); d > e.Stats.AttackRange+0.05 {
		t.Errorf("enemy stuck at %v, %f from the player", e.Pos, d)
	}
}

func TestEnemyKeepsStaleStepDuringCooldown(t *testing.T) {
	l := mustLevel(t, arena...)
	e := NewEnemy(core.V(1.5, 1.5), DefaultEnemyStats())

	e.Update(0.01, l, core.V(5.5, 1.5))
	first, ok := e.StepTarget()
	if !ok || first != (core.V(2.5, 1.5)) {
		t.Fatalf("first step = %v, %v; expected (2.5,1.5)", first, ok)
	}

	// Player moves inside the same cell; the old step is kept.
	e.Update(0.01, l, core.V(5.2, 1.8))
	if got, _ := e.StepTarget(); got != first {
		t.Errorf("step changed to %v inside the cooldown", got)
	}
}

func TestEnemyReplansWhenTargetCellChanges(t *testing.T) {
	l := mustLevel(t, arena...)
	e := NewEnemy(core.V(1.5, 1.5), DefaultEnemyStats())

	e.Update(0.01, l, core.V(5.5, 1.5))
	first, _ := e.StepTarget()

	// Still inside the cooldown, but the player is now in another cell.
	e.Update(0.01, l, core.V(1.5, 5.5))
	got, ok := e.StepTarget()
	if !ok || got == first {
		t.Errorf("step = %v, %v; expected a replan after the player changed cell", got, ok)
	}
	if got != (core.V(1.5, 2.5)) {
		t.Errorf("step = %v, expected (1.5,2.5) down the left column", got)
	}
}

func TestEnemyAttackCooldown(t *testing.T) {
	l := mustLevel(t, arena...)
	e := NewEnemy(core.V(2.5, 2.5), DefaultEnemyStats())
	player := core.V(3.0, 2.5)

	if !e.Update(0.01, l, player) {
		t.Fatal("enemy in range should attack")
	}
	if e.Update(0.01, l, player) {
		t.Error("second attack should wait for the cooldown")
	}
	if !e.Update(e.Stats.AttackCooldown, l, player) {
		t.Error("attack should be ready after the cooldown")
	}
}

func TestEnemyTakeDamage(t *testing.T) {
	e := NewEnemy(core.V(0, 0), DefaultEnemyStats())
	if e.TakeDamage(1) {
		t.Error("one point should not kill a fresh enemy")
	}
	if !e.TakeDamage(10) || e.Alive() {
		t.Error("overkill should kill the enemy")
	}
	if e.TakeDamage(1) {
		t.Error("a dead enemy cannot die twice")
	}
}

func TestBossDefeat(t *testing.T) {
	b := NewBoss(core.V(5, 3), DefaultBossStats())
	if b.TakeDamage(b.Stats.HP - 1) {
		t.Fatal("boss should survive with 1 HP")
	}
	if !b.TakeDamage(5) || b.State != BossDefeated || b.HP != 0 {
		t.Errorf("boss should be defeated, got state %d hp %d", b.State, b.HP)
	}
	if b.Alive() || b.TakeDamage(1) {
		t.Error("defeated boss should ignore damage")
	}
}

func TestBossPhasesAndAura(t *testing.T) {
	l := mustLevel(t, arena...)
	b := NewBoss(core.V(6.5, 3.5), DefaultBossStats())
	player := core.V(2.5, 1.5)

	calm := b.AuraAt(b.Stats.AuraInner - 0.1)
	if calm.Impair <= 0 || calm.Disorient <= 0 {
		t.Errorf("inner aura = %+v, expected both effects", calm)
	}
	if a := b.AuraAt(b.Stats.AuraOuter + 1); a != (Aura{}) {
		t.Errorf("aura outside the outer band = %+v", a)
	}

	b.TakeDamage(b.Stats.HP / 2)
	tick := b.Update(0.01, l, player, 0)
	if !tick.PhaseChanged || b.Phase != 1 {
		t.Errorf("phase = %d, changed = %v; expected phase 1", b.Phase, tick.PhaseChanged)
	}
	angry := b.AuraAt(b.Stats.AuraInner - 0.1)
	if angry.Impair <= calm.Impair {
		t.Errorf("aura should escalate at low health: %+v vs %+v", angry, calm)
	}
}

func TestBossTeleportBehind(t *testing.T) {
	l := mustLevel(t, arena...)
	b := NewBoss(core.V(8.5, 5.5), DefaultBossStats())
	player := core.V(5.5, 1.5)

	// Facing east: the first candidate is 3 cells behind at (2.5, 1.5).
	if !b.TeleportBehind(l, player, 0) {
		t.Fatal("expected a teleport")
	}
	if b.Pos.Dist(core.V(2.5, 1.5)) > 1e-9 {
		t.Errorf("boss at %v, expected (2.5, 1.5)", b.Pos)
	}

	// Facing west with the wall close behind: the best candidates are
	// inside walls, so a later one is used.
	player = core.V(6.5, 2.5)
	if !b.TeleportBehind(l, player, math.Pi) {
		t.Fatal("expected a fallback teleport")
	}
	if b.Pos.Dist(player) < b.Stats.MinSeparation || Blocked(l, b.Pos, b.Stats.Radius) {
		t.Errorf("teleport target %v violates separation or collides", b.Pos)
	}
}

func TestBossFires(t *testing.T) {
	l := mustLevel(t, arena...)
	b := NewBoss(core.V(6.5, 4.5), DefaultBossStats())
	var fired []Projectile
	for i := 0; i < 100; i++ {
		fired = append(fired, b.Update(0.05, l, core.V(1.5, 1.5), 0).Fired...)
	}
	if len(fired) == 0 {
		t.Fatal("boss should fire within five seconds")
	}
	if fired[0].Vel.Len() <= 0 || fired[0].Damage <= 0 {
		t.Errorf("bad projectile %+v", fired[0])
	}
}

func TestProjectileUpdate(t *testing.T) {
	l := mustLevel(t, arena...)

	p := Projectile{Pos: core.V(2.5, 1.5), Vel: core.V(4, 0), Life: 5, R: 0.1}
	res := Flying
	for i := 0; i < 100 && res == Flying; i++ {
		res = p.Update(0.1, l, core.V(100, 100), 0.3)
	}
	if res != HitWall {
		t.Errorf("result = %d, expected HitWall", res)
	}

	p = Projectile{Pos: core.V(2.5, 1.5), Vel: core.V(4, 0), Life: 5, R: 0.1}
	if res := p.Update(0.5, l, core.V(4.0, 1.5), 0.3); res != HitTarget {
		t.Errorf("result = %d, expected HitTarget", res)
	}

	p = Projectile{Pos: core.V(2.5, 1.5), Vel: core.V(0.1, 0), Life: 0.05, R: 0.1}
	if res := p.Update(0.1, l, core.V(100, 100), 0.3); res != Expired {
		t.Errorf("result = %d, expected Expired", res)
	}
}

func TestPortalReached(t *testing.T) {
	p := Portal{Pos: core.V(3, 3)}
	if p.Reached(core.V(3, 3)) {
		t.Error("closed portal cannot be entered")
	}
	p.Open = true
	if !p.Reached(core.V(3.2, 3)) || p.Reached(core.V(4, 3)) {
		t.Error("portal reach mismatch")
	}
}
