package config

import (
	_ "embed"
)

//go:embed defaults/floodrush.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors
// defaults/floodrush.yaml and is used if the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Queue: QueueConfig{
			Size:      20,
			MinPoints: 10,
			MaxPoints: 100,
			MinSpeed:  0.5,
			MaxSpeed:  1.0,
		},
		Flow: FlowConfig{
			FillRate:          0.25,
			StartDelaySeconds: 8,
			FastForward:       8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				DelayReduction:  4,
			},
		},
	}
}
