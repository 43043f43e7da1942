package config

import "math"

// minStartDelay is the shortest start delay difficulty scaling may produce.
const minStartDelay = 2.0

// DifficultyManager calculates dynamic flow parameters from the level
// number or the running score.
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

// Level returns the current difficulty level (0.0 to 1.0) for a level
// number and score.
func (d *DifficultyManager) Level(levelNumber int, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "level":
		// Level 1 starts at the initial level.
		progress = float64(levelNumber-1) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FillRate returns the fill rate scaled by difficulty.
func (d *DifficultyManager) FillRate(baseRate float64, levelNumber int, score int) float64 {
	level := d.Level(levelNumber, score)
	// Rate increases from base to base * (1 + speedMultiplier)
	return baseRate * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// StartDelay returns the start delay in seconds scaled by difficulty.
func (d *DifficultyManager) StartDelay(baseDelay float64, levelNumber int, score int) float64 {
	level := d.Level(levelNumber, score)
	result := baseDelay - level*d.cfg.Scaling.DelayReduction
	if result < minStartDelay && baseDelay >= minStartDelay {
		result = minStartDelay
	}
	return math.Max(result, 0)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
