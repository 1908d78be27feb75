// Package config provides YAML-based game configuration loading and
// the difficulty policy for the game.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidTunables reports a configuration that cannot produce a playable
// obstacle layout.
var ErrInvalidTunables = errors.New("config: invalid tunables")

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Ads        AdsConfig        `yaml:"ads"`
	Platform   PlatformConfig   `yaml:"platform"`
}

// WorldConfig defines the logical playfield in world units.
type WorldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	GroundHeight  float64 `yaml:"ground_height"`
	CullThreshold float64 `yaml:"cull_threshold"` // Obstacles whose right edge passes this x are removed
}

// GroundTop returns the y of the ground line.
func (w WorldConfig) GroundTop() float64 {
	return w.Height - w.GroundHeight
}

// PlayerConfig defines the player entity.
// Width and Height are the single authoritative collision box; the visual
// size only matters to the renderer.
type PlayerConfig struct {
	X              float64 `yaml:"x"`
	StartY         float64 `yaml:"start_y"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	VisualWidth    float64 `yaml:"visual_width"`
	VisualHeight   float64 `yaml:"visual_height"`
	HoverAmplitude float64 `yaml:"hover_amplitude"`
	HoverPeriodMs  int     `yaml:"hover_period_ms"`
}

// PhysicsConfig defines player kinematics in units per second.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`   // Negative = up
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // 0 disables the cap
}

// ObstacleConfig defines obstacle geometry and spawn timing.
type ObstacleConfig struct {
	PipeWidth        float64 `yaml:"pipe_width"`         // Body width, also the off-screen spawn offset
	CollisionWidth   float64 `yaml:"collision_width"`    // Body plus ledge
	MinPipeHeight    float64 `yaml:"min_pipe_height"`    // Solid segment guaranteed above and below the gap
	MinSegmentHeight float64 `yaml:"min_segment_height"` // Absolute floor for a segment's height
	StartDelayMs     int     `yaml:"start_delay_ms"`     // Delay between the first flap and the spawn cadence
	MinSpacing       float64 `yaml:"min_spacing"`        // Minimum horizontal distance between pairs
}

// DifficultyConfig defines the milestone difficulty progression.
type DifficultyConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Preset     string   `yaml:"preset"`
	Milestone  int      `yaml:"milestone"`
	GapPadding float64  `yaml:"gap_padding"`
	Initial    Tunables `yaml:"initial"`
	Step       Tunables `yaml:"step"`
	Limits     Limits   `yaml:"limits"`
}

// Tunables are the difficulty-controlled values of a running game.
type Tunables struct {
	ScrollSpeed     float64 `yaml:"scroll_speed"`
	PipeGap         float64 `yaml:"pipe_gap"`
	SpawnIntervalMs int     `yaml:"spawn_interval_ms"`
	MaxGapShift     float64 `yaml:"max_gap_shift"`
}

// Limits bound every tunable: speed has a ceiling, the rest have floors.
type Limits struct {
	MaxScrollSpeed     float64 `yaml:"max_scroll_speed"`
	MinPipeGap         float64 `yaml:"min_pipe_gap"`
	MinSpawnIntervalMs int     `yaml:"min_spawn_interval_ms"`
	MinGapShift        float64 `yaml:"min_gap_shift"`
}

// AdsConfig defines the ad-break rate limit.
type AdsConfig struct {
	MinIntervalSec int `yaml:"min_interval_sec"`
	TimeoutSec     int `yaml:"timeout_sec"`
}

// MinInterval returns the minimum time between two ad breaks.
func (a AdsConfig) MinInterval() time.Duration {
	return time.Duration(a.MinIntervalSec) * time.Second
}

// Timeout returns how long an ad break may take. Zero means no limit.
func (a AdsConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSec) * time.Second
}

// PlatformConfig selects and tunes the platform services implementation.
type PlatformConfig struct {
	Mode      string          `yaml:"mode"` // "offline" or "simulated"
	Language  string          `yaml:"language"`
	Simulated SimulatedConfig `yaml:"simulated"`
}

// Platform modes.
const (
	PlatformOffline   = "offline"
	PlatformSimulated = "simulated"
)

// SimulatedConfig mirrors the knobs of the platform SDK mock.
type SimulatedConfig struct {
	AdDelayMs         int     `yaml:"ad_delay_ms"`
	NetworkDelayMs    int     `yaml:"network_delay_ms"`
	AdShowProbability float64 `yaml:"ad_show_probability"`
	FailProbability   float64 `yaml:"fail_probability"`
}

// Validate checks the configuration for values that cannot run.
// The largest gap the game will ever use is the initial one, so a layout that
// fits it fits every later gap.
func (c FlappyConfig) Validate() error {
	if !finite(
		c.World.Width, c.World.Height, c.World.GroundHeight, c.World.CullThreshold,
		c.Player.X, c.Player.StartY, c.Player.Width, c.Player.Height, c.Player.HoverAmplitude,
		c.Physics.Gravity, c.Physics.JumpImpulse, c.Physics.MaxFallSpeed,
		c.Obstacles.PipeWidth, c.Obstacles.CollisionWidth, c.Obstacles.MinPipeHeight,
		c.Obstacles.MinSegmentHeight, c.Obstacles.MinSpacing,
		c.Difficulty.GapPadding, c.Difficulty.Step.ScrollSpeed, c.Difficulty.Step.PipeGap,
		c.Difficulty.Step.MaxGapShift, c.Difficulty.Limits.MaxScrollSpeed,
		c.Difficulty.Limits.MinPipeGap, c.Difficulty.Limits.MinGapShift,
	) {
		return fmt.Errorf("%w: non-finite value", ErrInvalidTunables)
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world size %vx%v", ErrInvalidTunables, c.World.Width, c.World.Height)
	}
	if c.World.GroundHeight < 0 || c.World.GroundHeight >= c.World.Height {
		return fmt.Errorf("%w: ground height %v", ErrInvalidTunables, c.World.GroundHeight)
	}
	if c.World.CullThreshold >= 0 {
		return fmt.Errorf("%w: cull threshold %v must be negative", ErrInvalidTunables, c.World.CullThreshold)
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		return fmt.Errorf("%w: player box %vx%v", ErrInvalidTunables, c.Player.Width, c.Player.Height)
	}
	if c.Difficulty.Milestone <= 0 {
		return fmt.Errorf("%w: milestone %d", ErrInvalidTunables, c.Difficulty.Milestone)
	}
	if c.Difficulty.Initial.ScrollSpeed <= 0 || c.Difficulty.Initial.SpawnIntervalMs <= 0 {
		return fmt.Errorf("%w: non-positive speed or spawn interval", ErrInvalidTunables)
	}
	// Presets turn progression on, so the floor must fit even when it is off
	floor := NewDifficultyPolicy(c.Difficulty, c.Player.Height).GapFloor()
	if floor > c.MaxPipeGap() {
		return fmt.Errorf("%w: gap floor %v exceeds available room %v", ErrInvalidTunables, floor, c.MaxPipeGap())
	}
	switch c.Platform.Mode {
	case "", PlatformOffline, PlatformSimulated:
	default:
		return fmt.Errorf("config: unknown platform mode %q", c.Platform.Mode)
	}
	return c.CheckTunables(c.Difficulty.Initial)
}

// CheckTunables reports whether t leaves room for a gap between two segments
// of at least MinPipeHeight each, and whether the gap fits the player.
func (c FlappyConfig) CheckTunables(t Tunables) error {
	if !finite(t.ScrollSpeed, t.PipeGap, t.MaxGapShift) {
		return fmt.Errorf("%w: non-finite tunable in %+v", ErrInvalidTunables, t)
	}
	room := c.MaxPipeGap()
	if t.PipeGap > room {
		return fmt.Errorf("%w: pipe gap %v exceeds available room %v", ErrInvalidTunables, t.PipeGap, room)
	}
	if t.PipeGap < c.Player.Height {
		return fmt.Errorf("%w: pipe gap %v is smaller than the player (%v)", ErrInvalidTunables, t.PipeGap, c.Player.Height)
	}
	if t.MaxGapShift < 0 {
		return fmt.Errorf("%w: negative gap shift %v", ErrInvalidTunables, t.MaxGapShift)
	}
	return nil
}

// MaxPipeGap returns the largest gap the world can hold.
func (c FlappyConfig) MaxPipeGap() float64 {
	return c.World.GroundTop() - 2*c.Obstacles.MinPipeHeight
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// StepsForPreset returns how many milestone steps a preset applies up front.
func StepsForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 2
	case DifficultyHard:
		return 5
	default:
		return 0
	}
}

// ParsePreset validates a preset name. Empty means easy.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyEasy, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty preset %q", s)
	}
}
