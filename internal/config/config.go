// Package config provides YAML-based game configuration loading and
// difficulty management for FloodRush.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config contains all tunable FloodRush parameters.
type Config struct {
	Queue      QueueConfig      `yaml:"queue"`
	Flow       FlowConfig       `yaml:"flow"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// QueueConfig defines piece generation parameters.
type QueueConfig struct {
	Size      int     `yaml:"size"`
	MinPoints int     `yaml:"min_points"`
	MaxPoints int     `yaml:"max_points"` // Exclusive
	MinSpeed  float64 `yaml:"min_speed"`
	MaxSpeed  float64 `yaml:"max_speed"`
}

// FlowConfig defines water simulation parameters.
type FlowConfig struct {
	FillRate          float64 `yaml:"fill_rate"`           // Piece fraction per second at game speed 1
	StartDelaySeconds float64 `yaml:"start_delay_seconds"` // Time before water leaves the start tile
	FastForward       float64 `yaml:"fast_forward"`        // Rate multiplier when the player fast-forwards
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Level number or score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to fill rate at max difficulty
	DelayReduction  float64 `yaml:"delay_reduction"`  // Start delay seconds removed at max difficulty
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Queue.Size <= 0 {
		errs = append(errs, fmt.Errorf("queue.size must be positive (got %d)", c.Queue.Size))
	}
	if c.Queue.MinPoints < 0 || c.Queue.MaxPoints <= c.Queue.MinPoints {
		errs = append(errs, fmt.Errorf("queue points range [%d,%d) is empty or negative", c.Queue.MinPoints, c.Queue.MaxPoints))
	}
	if c.Queue.MinSpeed < 0 || c.Queue.MaxSpeed > 1 || c.Queue.MaxSpeed < c.Queue.MinSpeed {
		errs = append(errs, fmt.Errorf("queue speed range [%g,%g] must lie within [0,1]", c.Queue.MinSpeed, c.Queue.MaxSpeed))
	}
	if c.Flow.FillRate <= 0 {
		errs = append(errs, fmt.Errorf("flow.fill_rate must be positive (got %g)", c.Flow.FillRate))
	}
	if c.Flow.StartDelaySeconds < 0 {
		errs = append(errs, fmt.Errorf("flow.start_delay_seconds cannot be negative (got %g)", c.Flow.StartDelaySeconds))
	}
	switch c.Difficulty.Progression.Type {
	case "level", "score", "none", "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of level, score, none", c.Difficulty.Progression.Type))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted difficulty presets.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(s))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
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
