package shooter

import (
	"strings"
	"testing"

	"github.com/jerecoder/cave-snake/internal/config"
	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/sim"
)

func newTestGame(seed int64) *Game {
	g := NewWithConfig(config.DefaultShooterConfig())
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24, TickRate: 60})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestResetState(t *testing.T) {
	g := newTestGame(0x12345678)
	if err := g.Err(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	s := g.Snapshot()
	if s.Floor != 1 || s.Score != 0 || s.HP != 100 || s.Ammo != 24 || s.Weapon != 0 {
		t.Errorf("snapshot %+v, expected floor 1 with a fresh player", s)
	}
	if s.State != StateRunning || s.EnemiesLeft != 4 || s.PortalOpen {
		t.Errorf("snapshot %+v, expected a running floor with 4 enemies and a closed portal", s)
	}
	if g.ID() != "shooter" || g.Title() != "Maze Raider" {
		t.Errorf("id/title = %s/%s", g.ID(), g.Title())
	}
}

func TestInvalidConfigStopsGame(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	cfg.Render.TextureSize = 30
	g := NewWithConfig(cfg)
	g.Reset(core.DefaultConfig())

	if g.Err() == nil {
		t.Fatal("expected an error for a non power of two texture")
	}
	g.Step(press(core.ActionUp))
	if s := g.Snapshot(); s.State != StateError {
		t.Errorf("state = %s, expected error", s.State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start") {
		t.Error("expected the error overlay")
	}
}

func TestFloorTransitionCarriesPlayer(t *testing.T) {
	g := newTestGame(7)
	ctx := g.Context()
	for _, e := range ctx.Enemies {
		e.HP = 0
	}
	ctx.Portal.Pos = g.Player().Pos
	g.Player().HP = 60
	g.Player().Ammo = 5

	g.Step(core.NewInputFrame())

	if g.Floor() != 2 {
		t.Fatalf("floor = %d, expected 2", g.Floor())
	}
	if g.Context() == ctx {
		t.Error("expected a fresh floor context")
	}
	if g.Player().HP != 60 || g.Player().Ammo != 5 {
		t.Errorf("hp %d ammo %d, expected the player to carry over", g.Player().HP, g.Player().Ammo)
	}
	if g.Player().Pos != core.V(2, 2) {
		t.Errorf("player at %v, expected the spawn pocket", g.Player().Pos)
	}
	if g.Score() != 500 {
		t.Errorf("score = %d, expected the floor bonus", g.Score())
	}

	var complete bool
	for _, e := range g.DrainEvents() {
		if e.Kind == core.EventLevelComplete && e.Value == 1 {
			complete = true
		}
	}
	if !complete {
		t.Error("expected a level complete event for floor 1")
	}
}

func TestDeathAndRestart(t *testing.T) {
	g := newTestGame(7)
	p := g.Player()
	p.HP = 5
	g.Context().Projectiles = []sim.Projectile{{Pos: p.Pos.Add(core.V(0.3, 0)), Vel: core.V(-3, 0), Life: 4, R: 0.18, Damage: 10}}

	g.Step(core.NewInputFrame())
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}
	sum := g.Summary()
	if sum.GameID != "shooter" || sum.Reason != "KILLED ON FLOOR 1" || sum.Level != 1 || sum.Height != 0 {
		t.Errorf("summary %+v, expected a floor 1 death", sum)
	}

	var died bool
	for _, e := range g.DrainEvents() {
		died = died || e.Kind == core.EventDied
	}
	if !died {
		t.Error("expected a died event")
	}

	// input is ignored until restart
	before := g.Snapshot()
	g.Step(press(core.ActionUp, core.ActionFire))
	if after := g.Snapshot(); after.PosX != before.PosX || after.Ammo != before.Ammo {
		t.Error("expected a dead game to ignore movement")
	}

	g.Step(press(core.ActionRestart))
	if g.State().GameOver || g.Floor() != 1 || g.Player().HP != 100 {
		t.Errorf("expected a fresh run after restart, got %+v", g.Snapshot())
	}
}

func TestPauseAndMapToggle(t *testing.T) {
	g := newTestGame(7)
	g.Step(press(core.ActionPause))
	before := g.Snapshot()
	g.Step(press(core.ActionUp))
	if after := g.Snapshot(); after.PosX != before.PosX || after.PosY != before.PosY || after.State != StatePaused {
		t.Error("expected a paused game to ignore movement")
	}
	g.Step(press(core.ActionPause))

	g.Step(press(core.ActionTogglePath))
	if !g.showMap {
		t.Error("expected the minimap to be on")
	}
	screen := core.NewScreen(120, 40)
	g.Render(screen)
	if !strings.Contains(screen.String(), "→") {
		t.Error("expected the player arrow on the minimap")
	}
}

func TestWeaponSwitch(t *testing.T) {
	g := newTestGame(7)
	tests := []struct {
		action core.Action
		weapon int
	}{
		{core.ActionWeapon2, 1},
		{core.ActionWeapon3, 2},
		{core.ActionWeapon1, 0},
	}
	for _, tt := range tests {
		g.Step(press(tt.action))
		if g.Player().Weapon != tt.weapon {
			t.Errorf("%s: weapon = %d, expected %d", tt.action, g.Player().Weapon, tt.weapon)
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(7)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "MAZE RAIDER") {
		t.Errorf("HUD row = %q, expected the title", screen.Row(0))
	}
	frame := g.Frame()
	if frame == nil {
		t.Fatal("expected a frame after Render")
	}
	if b := frame.Bounds(); b.Dx() != 80 || b.Dy() != 42 {
		t.Errorf("frame %dx%d, expected 80x42", b.Dx(), b.Dy())
	}
	if c := screen.GetCell(40, 10); !c.TrueColor || c.Rune != '▀' {
		t.Errorf("cell = %+v, expected a half-block pixel", c)
	}

	small := core.NewScreen(20, 6)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Error("expected the too-small overlay")
	}
	before := g.Snapshot()
	g.Step(press(core.ActionUp))
	if g.Snapshot().PosX != before.PosX {
		t.Error("expected the game to hold while the window is too small")
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := newTestGame(12345)
	g2 := newTestGame(12345)

	script := []struct {
		from, to int
		actions  []core.Action
	}{
		{0, 60, []core.Action{core.ActionUp}},
		{60, 90, []core.Action{core.ActionRight}},
		{90, 200, []core.Action{core.ActionUp, core.ActionFire}},
		{200, 230, []core.Action{core.ActionWeapon2, core.ActionLeft}},
		{230, 400, []core.Action{core.ActionStrafeLeft, core.ActionFire}},
	}
	for _, s := range script {
		for i := s.from; i < s.to; i++ {
			input := press(s.actions...)
			g1.Step(input)
			g2.Step(input)
			if g1.Snapshot() != g2.Snapshot() {
				t.Fatalf("tick %d: snapshots diverged\n%+v\n%+v", i, g1.Snapshot(), g2.Snapshot())
			}
		}
	}
}
