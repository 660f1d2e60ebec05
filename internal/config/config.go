// Package config loads per-game tunables from YAML. Every game has an
// embedded default file; users may override it per machine or per run.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/jerecoder/cave-snake/internal/gen"
	"github.com/jerecoder/cave-snake/internal/raycast"
	"github.com/jerecoder/cave-snake/internal/sim"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// SnakeConfig contains all Cave Snake configuration.
type SnakeConfig struct {
	Board    gen.ChunkParams `yaml:"board"`
	Gameplay SnakeGameplay   `yaml:"gameplay"`
	Timing   SnakeTiming     `yaml:"timing"`
}

// SnakeGameplay defines lives and board growth.
type SnakeGameplay struct {
	Lives      int `yaml:"lives"`
	AddChunks  int `yaml:"add_chunks"`  // chunks revealed per expansion
	QueueDepth int `yaml:"queue_depth"` // buffered turns
}

// SnakeTiming defines the step interval: BaseMs shrinks by DecayMs per
// chunk revealed past the start, never below MinMs, then is divided by
// SpeedDial.
type SnakeTiming struct {
	BaseMs    int     `yaml:"base_ms"`
	MinMs     int     `yaml:"min_ms"`
	DecayMs   int     `yaml:"decay_ms"`
	SpeedDial float64 `yaml:"speed_dial"`
}

// Validate rejects snake settings the game cannot run with.
func (c SnakeConfig) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return fmt.Errorf("%w: snake board: %w", ErrInvalidConfig, err)
	}
	switch {
	case c.Gameplay.Lives < 1:
		return fmt.Errorf("%w: snake lives %d < 1", ErrInvalidConfig, c.Gameplay.Lives)
	case c.Gameplay.AddChunks < 1:
		return fmt.Errorf("%w: snake add_chunks %d < 1", ErrInvalidConfig, c.Gameplay.AddChunks)
	case c.Gameplay.QueueDepth < 1:
		return fmt.Errorf("%w: snake queue_depth %d < 1", ErrInvalidConfig, c.Gameplay.QueueDepth)
	case c.Timing.MinMs < 1 || c.Timing.BaseMs < c.Timing.MinMs:
		return fmt.Errorf("%w: snake step %d..%d ms", ErrInvalidConfig, c.Timing.MinMs, c.Timing.BaseMs)
	case c.Timing.SpeedDial <= 0:
		return fmt.Errorf("%w: snake speed_dial %.2f must be positive", ErrInvalidConfig, c.Timing.SpeedDial)
	}
	return nil
}

// ShooterConfig contains all Maze Raider configuration.
type ShooterConfig struct {
	Floor      ShooterFloor     `yaml:"floor"`
	Player     ShooterPlayer    `yaml:"player"`
	Weapons    []WeaponConfig   `yaml:"weapons"`
	Enemy      sim.EnemyStats   `yaml:"enemy"`
	Boss       sim.BossStats    `yaml:"boss"`
	Render     RenderConfig     `yaml:"render"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ShooterFloor defines maze size and population.
type ShooterFloor struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	BaseEnemies    int `yaml:"base_enemies"`
	MaxEnemies     int `yaml:"max_enemies"`
	BossEvery      int `yaml:"boss_every"` // boss on floors that are multiples of this
	HealthPickups  int `yaml:"health_pickups"`
	AmmoPickups    int `yaml:"ammo_pickups"`
	KillScore      int `yaml:"kill_score"`
	BossScore      int `yaml:"boss_score"`
	FloorScore     int `yaml:"floor_score"`
	SpawnClearance int `yaml:"spawn_clearance"` // minimum BFS distance from the player for spawns
}

// ShooterPlayer defines the player body.
type ShooterPlayer struct {
	HP            int     `yaml:"hp"`
	Radius        float64 `yaml:"radius"`
	MoveSpeed     float64 `yaml:"move_speed"` // cells per second
	TurnSpeed     float64 `yaml:"turn_speed"` // radians per second
	HurtCooldown  float64 `yaml:"hurt_cooldown"`
	PickupHealth  int     `yaml:"pickup_health"`
	PickupAmmo    int     `yaml:"pickup_ammo"`
	StartingAmmo  int     `yaml:"starting_ammo"`
	MaxAmmo       int     `yaml:"max_ammo"`
	DisorientTurn float64 `yaml:"disorient_turn"` // radians per second of drift at full disorientation
}

// WeaponConfig defines one hitscan weapon.
type WeaponConfig struct {
	Name     string  `yaml:"name"`
	Damage   int     `yaml:"damage"`
	Pellets  int     `yaml:"pellets"`
	Spread   float64 `yaml:"spread"` // total cone in degrees
	Cooldown float64 `yaml:"cooldown"`
	AmmoCost int     `yaml:"ammo_cost"`
	Range    int     `yaml:"range"` // DDA steps
}

// RenderConfig defines the first-person view.
type RenderConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	FOVDegrees   float64 `yaml:"fov_degrees"`
	MaxSteps     int     `yaml:"max_steps"`
	FogK         float64 `yaml:"fog_k"`
	SideShade    float64 `yaml:"side_shade"`
	FocusFalloff float64 `yaml:"focus_falloff"`
	TorchAmp     float64 `yaml:"torch_amp"`
	TorchHz      float64 `yaml:"torch_hz"`
	ShadeLevels  int     `yaml:"shade_levels"`
	TextureSize  int     `yaml:"texture_size"`
	FogColor     [3]int  `yaml:"fog_color,flow"`
}

// Raycast converts the YAML view settings into a renderer configuration.
func (r RenderConfig) Raycast() raycast.Config {
	cfg := raycast.DefaultConfig()
	cfg.Width = r.Width
	cfg.Height = r.Height
	cfg.FOV = r.FOVDegrees * math.Pi / 180
	cfg.MaxSteps = r.MaxSteps
	cfg.FogK = r.FogK
	cfg.SideShade = r.SideShade
	cfg.FocusFalloff = r.FocusFalloff
	cfg.TorchAmp = r.TorchAmp
	cfg.TorchHz = r.TorchHz
	cfg.ShadeLevels = r.ShadeLevels
	cfg.FogColor.R = uint8(clampI(r.FogColor[0], 0, 255))
	cfg.FogColor.G = uint8(clampI(r.FogColor[1], 0, 255))
	cfg.FogColor.B = uint8(clampI(r.FogColor[2], 0, 255))
	return cfg
}

// Validate rejects shooter settings the game cannot run with.
func (c ShooterConfig) Validate() error {
	maze := gen.MazeParams{Width: c.Floor.Width, Height: c.Floor.Height}
	if err := maze.Validate(); err != nil {
		return fmt.Errorf("%w: shooter floor: %w", ErrInvalidConfig, err)
	}
	if err := c.Render.Raycast().Validate(); err != nil {
		return fmt.Errorf("%w: shooter render: %w", ErrInvalidConfig, err)
	}
	switch {
	case c.Render.FOVDegrees <= 0 || c.Render.FOVDegrees >= 180:
		return fmt.Errorf("%w: fov %.1f outside (0,180)", ErrInvalidConfig, c.Render.FOVDegrees)
	case !raycast.IsPowerOfTwo(c.Render.TextureSize):
		return fmt.Errorf("%w: texture size %d is not a power of two", ErrInvalidConfig, c.Render.TextureSize)
	case c.Player.HP < 1:
		return fmt.Errorf("%w: player hp %d < 1", ErrInvalidConfig, c.Player.HP)
	case c.Player.Radius <= 0 || c.Player.Radius >= 0.5:
		return fmt.Errorf("%w: player radius %.2f outside (0,0.5)", ErrInvalidConfig, c.Player.Radius)
	case len(c.Weapons) == 0:
		return fmt.Errorf("%w: no weapons", ErrInvalidConfig)
	case c.Floor.BossEvery < 1:
		return fmt.Errorf("%w: boss_every %d < 1", ErrInvalidConfig, c.Floor.BossEvery)
	}
	for i, w := range c.Weapons {
		if w.Pellets < 1 || w.Damage < 1 || w.Range < 1 {
			return fmt.Errorf("%w: weapon %d (%s) needs pellets, damage and range", ErrInvalidConfig, i, w.Name)
		}
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "floor", "score", or "none"
	MaxAt int    `yaml:"max_at"` // floor/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to enemy speed at max difficulty
	ExtraEnemies    int     `yaml:"extra_enemies"`    // added to the enemy count at max difficulty
	DamageBonus     int     `yaml:"damage_bonus"`     // added to enemy damage at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset; unknown names mean normal.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return DifficultyNormal
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

func clampI(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
