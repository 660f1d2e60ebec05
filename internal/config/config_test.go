package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Run("snake", func(t *testing.T) {
		cfg, err := load("", "does-not-exist.yaml", defaultSnakeYAML, DefaultSnakeConfig)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !reflect.DeepEqual(cfg, DefaultSnakeConfig()) {
			t.Errorf("embedded snake.yaml = %+v, expected %+v", cfg, DefaultSnakeConfig())
		}
	})
	t.Run("shooter", func(t *testing.T) {
		cfg, err := load("", "does-not-exist.yaml", defaultShooterYAML, DefaultShooterConfig)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !reflect.DeepEqual(cfg, DefaultShooterConfig()) {
			t.Errorf("embedded shooter.yaml = %+v, expected %+v", cfg, DefaultShooterConfig())
		}
	})
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultSnakeConfig().Validate(); err != nil {
		t.Errorf("default snake config invalid: %v", err)
	}
	if err := DefaultShooterConfig().Validate(); err != nil {
		t.Errorf("default shooter config invalid: %v", err)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snake.yaml")
	data := []byte("gameplay:\n  lives: 7\ntiming:\n  speed_dial: 2.0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake: %v", err)
	}
	if cfg.Gameplay.Lives != 7 || cfg.Timing.SpeedDial != 2.0 {
		t.Errorf("override not applied: %+v", cfg)
	}
	if cfg.Board.Width != 25 || cfg.Timing.BaseMs != 240 {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadShooter(bad); err == nil {
		t.Error("expected parse error for malformed YAML")
	}

	odd := filepath.Join(dir, "odd.yaml")
	if err := os.WriteFile(odd, []byte("board:\n  chunk_height: 11\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(odd); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("odd chunk height: expected ErrInvalidConfig, got %v", err)
	}
}

func TestShooterValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ShooterConfig)
	}{
		{"fov too wide", func(c *ShooterConfig) { c.Render.FOVDegrees = 180 }},
		{"fov zero", func(c *ShooterConfig) { c.Render.FOVDegrees = 0 }},
		{"texture not power of two", func(c *ShooterConfig) { c.Render.TextureSize = 24 }},
		{"tiny maze", func(c *ShooterConfig) { c.Floor.Width = 3 }},
		{"no weapons", func(c *ShooterConfig) { c.Weapons = nil }},
		{"zero pellets", func(c *ShooterConfig) { c.Weapons[0].Pellets = 0 }},
		{"fat player", func(c *ShooterConfig) { c.Player.Radius = 0.6 }},
		{"boss never", func(c *ShooterConfig) { c.Floor.BossEvery = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultShooterConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRenderConfigRaycast(t *testing.T) {
	r := DefaultShooterConfig().Render
	r.FogColor = [3]int{300, -5, 16}
	rc := r.Raycast()
	if math.Abs(rc.FOV-66*math.Pi/180) > 1e-12 {
		t.Errorf("FOV = %v rad, expected 66 degrees", rc.FOV)
	}
	if rc.FogColor.R != 255 || rc.FogColor.G != 0 || rc.FogColor.B != 16 || rc.FogColor.A != 255 {
		t.Errorf("FogColor = %+v, expected clamped {255 0 16 255}", rc.FogColor)
	}
}

func TestPresets(t *testing.T) {
	t.Run("snake", func(t *testing.T) {
		cfg := DefaultSnakeConfig()
		ApplySnakePreset(&cfg, DifficultyHard)
		if cfg.Gameplay.Lives != 2 || cfg.Timing.SpeedDial <= 1 {
			t.Errorf("hard preset = %+v", cfg.Gameplay)
		}
		cfg = DefaultSnakeConfig()
		ApplySnakePreset(&cfg, DifficultyFixed)
		if cfg.Timing.DecayMs != 0 {
			t.Error("fixed preset should disable the speed ramp")
		}
	})
	t.Run("shooter", func(t *testing.T) {
		cfg := DefaultShooterConfig()
		ApplyShooterPreset(&cfg, DifficultyFixed)
		if cfg.Difficulty.Enabled {
			t.Error("fixed preset should disable progression")
		}
		cfg = DefaultShooterConfig()
		ApplyShooterPreset(&cfg, DifficultyHard)
		if cfg.Difficulty.InitialLevel != 0.7 || cfg.Player.HP != 75 {
			t.Errorf("hard preset: level %.1f hp %d", cfg.Difficulty.InitialLevel, cfg.Player.HP)
		}
	})
	if ParsePreset("bogus") != DifficultyNormal || ParsePreset("easy") != DifficultyEasy {
		t.Error("ParsePreset mapping wrong")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultShooterConfig().Difficulty
	d := NewDifficultyManager(cfg)

	tests := []struct {
		floor    int
		expected float64
	}{
		{1, 0},
		{6, 0.5},
		{11, 1},
		{40, 1},
	}
	for _, tc := range tests {
		if got := d.Level(tc.floor, 0); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Level(floor %d) = %v, expected %v", tc.floor, got, tc.expected)
		}
	}

	if got := d.Enemies(4, 14, 1, 0); got != 4 {
		t.Errorf("Enemies on floor 1 = %d, expected 4", got)
	}
	if got := d.Enemies(4, 14, 30, 0); got != 14 {
		t.Errorf("Enemies on floor 30 = %d, expected cap 14", got)
	}
	if got := d.Speed(2, 11, 0); got != 3 {
		t.Errorf("Speed at max = %v, expected 3", got)
	}
	if got := d.Damage(8, 11, 0); got != 12 {
		t.Errorf("Damage at max = %d, expected 12", got)
	}

	d.SetEnabled(false)
	d.SetInitialLevel(0.3)
	if got := d.Level(11, 0); got != 0.3 {
		t.Errorf("disabled Level = %v, expected initial 0.3", got)
	}
}
