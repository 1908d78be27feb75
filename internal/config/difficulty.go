package config

import "math"

// DifficultyPolicy maps score milestones to new tunables.
// Every curve is monotonic and clamped, so repeated application converges to
// the configured limits and stays there.
type DifficultyPolicy struct {
	cfg       DifficultyConfig
	birdFloor float64
}

// NewDifficultyPolicy creates a policy for a player whose collision box is
// playerHeight tall.
func NewDifficultyPolicy(cfg DifficultyConfig, playerHeight float64) *DifficultyPolicy {
	return &DifficultyPolicy{
		cfg:       cfg,
		birdFloor: playerHeight + 2*cfg.GapPadding,
	}
}

// IsEnabled returns whether difficulty progression is active.
func (p *DifficultyPolicy) IsEnabled() bool {
	return p.cfg.Enabled && p.cfg.Milestone > 0
}

// Initial returns the tunables a new game starts with.
func (p *DifficultyPolicy) Initial() Tunables {
	return p.cfg.Initial
}

// IsMilestone reports whether reaching score should tighten the difficulty.
func (p *DifficultyPolicy) IsMilestone(score int) bool {
	return p.IsEnabled() && score > 0 && score%p.cfg.Milestone == 0
}

// GapFloor returns the smallest gap the policy will ever produce: the larger
// of the hard floor and the player's height plus padding on both sides.
func (p *DifficultyPolicy) GapFloor() float64 {
	return math.Max(p.cfg.Limits.MinPipeGap, p.birdFloor)
}

// Apply returns t after one milestone step. Each field is adjusted
// independently.
func (p *DifficultyPolicy) Apply(t Tunables) Tunables {
	lim := p.cfg.Limits
	step := p.cfg.Step

	t.ScrollSpeed = math.Min(lim.MaxScrollSpeed, t.ScrollSpeed+step.ScrollSpeed)
	t.PipeGap = math.Max(p.GapFloor(), t.PipeGap-step.PipeGap)
	t.SpawnIntervalMs = max(lim.MinSpawnIntervalMs, t.SpawnIntervalMs-step.SpawnIntervalMs)
	t.MaxGapShift = math.Max(lim.MinGapShift, t.MaxGapShift-step.MaxGapShift)
	return t
}

// ApplyN applies n milestone steps.
func (p *DifficultyPolicy) ApplyN(t Tunables, n int) Tunables {
	for i := 0; i < n; i++ {
		t = p.Apply(t)
	}
	return t
}

// SpawnCadenceMs returns the effective repeat interval of the spawn timer:
// the configured interval, stretched when needed so consecutive pairs are at
// least minSpacing apart at the current scroll speed.
func SpawnCadenceMs(t Tunables, minSpacing float64) float64 {
	interval := float64(t.SpawnIntervalMs)
	if t.ScrollSpeed > 0 && minSpacing > 0 {
		interval = math.Max(interval, minSpacing/t.ScrollSpeed*1000)
	}
	return interval
}
