package config

import (
	_ "embed"

	"github.com/jerecoder/cave-snake/internal/gen"
	"github.com/jerecoder/cave-snake/internal/sim"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultSnakeConfig returns the default Cave Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: gen.DefaultChunkParams(),
		Gameplay: SnakeGameplay{
			Lives:      3,
			AddChunks:  1,
			QueueDepth: 2,
		},
		Timing: SnakeTiming{
			BaseMs:    240,
			MinMs:     80,
			DecayMs:   10,
			SpeedDial: 1.0,
		},
	}
}

// DefaultShooterConfig returns the default Maze Raider configuration.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Floor: ShooterFloor{
			Width:          25,
			Height:         25,
			BaseEnemies:    4,
			MaxEnemies:     14,
			BossEvery:      3,
			HealthPickups:  2,
			AmmoPickups:    2,
			KillScore:      100,
			BossScore:      2500,
			FloorScore:     500,
			SpawnClearance: 6,
		},
		Player: ShooterPlayer{
			HP:            100,
			Radius:        0.22,
			MoveSpeed:     2.6,
			TurnSpeed:     2.4,
			HurtCooldown:  0.5,
			PickupHealth:  25,
			PickupAmmo:    12,
			StartingAmmo:  24,
			MaxAmmo:       99,
			DisorientTurn: 0.9,
		},
		Weapons: []WeaponConfig{
			{Name: "pistol", Damage: 1, Pellets: 1, Cooldown: 0.35, Range: 48},
			{Name: "shotgun", Damage: 1, Pellets: 5, Spread: 14, Cooldown: 0.8, AmmoCost: 1, Range: 20},
			{Name: "rail", Damage: 4, Pellets: 1, Cooldown: 1.2, AmmoCost: 3, Range: 64},
		},
		Enemy: sim.DefaultEnemyStats(),
		Boss:  sim.DefaultBossStats(),
		Render: RenderConfig{
			Width:        120,
			Height:       60,
			FOVDegrees:   66,
			MaxSteps:     64,
			FogK:         0.035,
			SideShade:    0.72,
			FocusFalloff: 0.35,
			TorchAmp:     0.06,
			TorchHz:      0.7,
			ShadeLevels:  32,
			TextureSize:  32,
			FogColor:     [3]int{8, 11, 16},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "floor",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				ExtraEnemies:    6,
				DamageBonus:     4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snake":
		return defaultSnakeYAML
	case "shooter":
		return defaultShooterYAML
	default:
		return nil
	}
}
