package config

import (
	"errors"
	"math"
	"testing"
)

func newDefaultPolicy() (*DifficultyPolicy, FlappyConfig) {
	cfg := DefaultFlappyConfig()
	return NewDifficultyPolicy(cfg.Difficulty, cfg.Player.Height), cfg
}

func TestDifficultyConvergesToLimits(t *testing.T) {
	p, cfg := newDefaultPolicy()
	tun := p.Initial()

	if tun != (Tunables{ScrollSpeed: 170, PipeGap: 170, SpawnIntervalMs: 1400, MaxGapShift: 120}) {
		t.Fatalf("unexpected initial tunables %+v", tun)
	}

	birdFloor := cfg.Player.Height + 2*cfg.Difficulty.GapPadding
	gapFloor := max(110, birdFloor)

	for i := 0; i < 50; i++ {
		tun = p.Apply(tun)
		if tun.ScrollSpeed > 280 {
			t.Fatalf("step %d: scroll speed %v above ceiling", i, tun.ScrollSpeed)
		}
		if tun.PipeGap < gapFloor {
			t.Fatalf("step %d: pipe gap %v below floor %v", i, tun.PipeGap, gapFloor)
		}
		if tun.SpawnIntervalMs < 950 {
			t.Fatalf("step %d: spawn interval %d below floor", i, tun.SpawnIntervalMs)
		}
		if tun.MaxGapShift < 80 {
			t.Fatalf("step %d: gap shift %v below floor", i, tun.MaxGapShift)
		}
	}

	want := Tunables{ScrollSpeed: 280, PipeGap: gapFloor, SpawnIntervalMs: 950, MaxGapShift: 80}
	if tun != want {
		t.Errorf("after 50 steps got %+v, expected %+v", tun, want)
	}

	// Stays converged
	if again := p.Apply(tun); again != want {
		t.Errorf("converged tunables moved: %+v", again)
	}
}

func TestDifficultyFiveSteps(t *testing.T) {
	p, _ := newDefaultPolicy()
	tun := p.ApplyN(p.Initial(), 5)

	want := Tunables{ScrollSpeed: 230, PipeGap: 140, SpawnIntervalMs: 1250, MaxGapShift: 95}
	if tun != want {
		t.Errorf("ApplyN(5) = %+v, expected %+v", tun, want)
	}
}

func TestDifficultyBirdFloorWins(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Player.Height = 90 // 90 + 44 = 134 > 110
	p := NewDifficultyPolicy(cfg.Difficulty, cfg.Player.Height)

	if p.GapFloor() != 134 {
		t.Fatalf("GapFloor() = %v, expected 134", p.GapFloor())
	}
	tun := p.ApplyN(p.Initial(), 50)
	if tun.PipeGap != 134 {
		t.Errorf("pipe gap = %v, expected bird floor 134", tun.PipeGap)
	}
}

func TestIsMilestone(t *testing.T) {
	p, _ := newDefaultPolicy()

	tests := []struct {
		score    int
		expected bool
	}{
		{0, false},
		{1, false},
		{4, false},
		{5, true},
		{6, false},
		{10, true},
		{25, true},
	}
	for _, tc := range tests {
		if got := p.IsMilestone(tc.score); got != tc.expected {
			t.Errorf("IsMilestone(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}

	cfg := DefaultFlappyConfig()
	cfg.Difficulty.Enabled = false
	disabled := NewDifficultyPolicy(cfg.Difficulty, cfg.Player.Height)
	if disabled.IsMilestone(5) {
		t.Error("disabled policy should never report milestones")
	}
}

func TestSpawnCadence(t *testing.T) {
	tests := []struct {
		name     string
		tun      Tunables
		spacing  float64
		expected float64
	}{
		{"interval dominates", Tunables{ScrollSpeed: 170, SpawnIntervalMs: 1400}, 200, 1400},
		{"spacing dominates", Tunables{ScrollSpeed: 100, SpawnIntervalMs: 950}, 200, 2000},
		{"no spacing", Tunables{ScrollSpeed: 100, SpawnIntervalMs: 950}, 0, 950},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SpawnCadenceMs(tc.tun, tc.spacing); got != tc.expected {
				t.Errorf("SpawnCadenceMs() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCheckTunables(t *testing.T) {
	cfg := DefaultFlappyConfig()

	if err := cfg.CheckTunables(cfg.Difficulty.Initial); err != nil {
		t.Fatalf("default tunables rejected: %v", err)
	}

	tooWide := cfg.Difficulty.Initial
	tooWide.PipeGap = cfg.MaxPipeGap() + 1
	if err := cfg.CheckTunables(tooWide); !errors.Is(err, ErrInvalidTunables) {
		t.Errorf("expected ErrInvalidTunables for gap %v, got %v", tooWide.PipeGap, err)
	}

	tooNarrow := cfg.Difficulty.Initial
	tooNarrow.PipeGap = cfg.Player.Height - 1
	if err := cfg.CheckTunables(tooNarrow); !errors.Is(err, ErrInvalidTunables) {
		t.Errorf("expected ErrInvalidTunables for gap %v, got %v", tooNarrow.PipeGap, err)
	}
}

func TestCheckTunablesRejectsNonFinite(t *testing.T) {
	cfg := DefaultFlappyConfig()

	tests := []struct {
		name   string
		mutate func(*Tunables)
	}{
		{"NaN gap", func(t *Tunables) { t.PipeGap = math.NaN() }},
		{"Inf gap", func(t *Tunables) { t.PipeGap = math.Inf(1) }},
		{"NaN speed", func(t *Tunables) { t.ScrollSpeed = math.NaN() }},
		{"NaN shift", func(t *Tunables) { t.MaxGapShift = math.NaN() }},
		{"-Inf shift", func(t *Tunables) { t.MaxGapShift = math.Inf(-1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tun := cfg.Difficulty.Initial
			tc.mutate(&tun)
			if err := cfg.CheckTunables(tun); !errors.Is(err, ErrInvalidTunables) {
				t.Errorf("expected ErrInvalidTunables, got %v", err)
			}
		})
	}
}

func TestValidateRejectsGapFloorAboveRoom(t *testing.T) {
	cfg := DefaultFlappyConfig()
	// Room is 560 - 2*80 = 400; a 380 box plus 2*22 padding needs 424
	cfg.Player.Height = 380
	cfg.Difficulty.Initial.PipeGap = 390
	cfg.Difficulty.Enabled = false

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidTunables) {
		t.Errorf("expected ErrInvalidTunables, got %v", err)
	}
}
