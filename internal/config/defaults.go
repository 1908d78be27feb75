package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
// It matches defaults/flappy.yaml and is used when the embedded YAML cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:         360,
			Height:        640,
			GroundHeight:  80,
			CullThreshold: -80,
		},
		Player: PlayerConfig{
			X:              90,
			StartY:         213,
			Width:          50,
			Height:         36,
			VisualWidth:    110,
			VisualHeight:   70,
			HoverAmplitude: 15,
			HoverPeriodMs:  1200,
		},
		Physics: PhysicsConfig{
			Gravity:      900,
			JumpImpulse:  -330,
			MaxFallSpeed: 0,
		},
		Obstacles: ObstacleConfig{
			PipeWidth:        70,
			CollisionWidth:   78,
			MinPipeHeight:    80,
			MinSegmentHeight: 10,
			StartDelayMs:     1200,
			MinSpacing:       200,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			Preset:     string(DifficultyEasy),
			Milestone:  5,
			GapPadding: 22,
			Initial: Tunables{
				ScrollSpeed:     170,
				PipeGap:         170,
				SpawnIntervalMs: 1400,
				MaxGapShift:     120,
			},
			Step: Tunables{
				ScrollSpeed:     12,
				PipeGap:         6,
				SpawnIntervalMs: 30,
				MaxGapShift:     5,
			},
			Limits: Limits{
				MaxScrollSpeed:     280,
				MinPipeGap:         110,
				MinSpawnIntervalMs: 950,
				MinGapShift:        80,
			},
		},
		Ads: AdsConfig{
			MinIntervalSec: 60,
			TimeoutSec:     30,
		},
		Platform: PlatformConfig{
			Mode: PlatformOffline,
			Simulated: SimulatedConfig{
				AdDelayMs:         2000,
				NetworkDelayMs:    500,
				AdShowProbability: 1.0,
				FailProbability:   0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
