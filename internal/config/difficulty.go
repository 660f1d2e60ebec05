package config

import "math"

// DifficultyManager calculates dynamic game parameters based on floor/score.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on the
// floor reached (1-based) or the score.
func (d *DifficultyManager) Level(floor, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "floor":
		progress = float64(floor-1) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	// Clamp progress to [0, 1]
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns an enemy speed scaled by the difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, floor, score int) float64 {
	level := d.Level(floor, score)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// Enemies returns the enemy count for a floor, capped at maxEnemies.
func (d *DifficultyManager) Enemies(base, maxEnemies, floor, score int) int {
	level := d.Level(floor, score)
	n := base + (floor - 1) + int(level*float64(d.cfg.Scaling.ExtraEnemies))
	return min(n, maxEnemies)
}

// Damage returns an enemy hit scaled by the difficulty level.
func (d *DifficultyManager) Damage(base, floor, score int) int {
	level := d.Level(floor, score)
	return base + int(level*float64(d.cfg.Scaling.DamageBonus))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
