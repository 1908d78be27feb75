package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultFlappyConfig() {
		t.Errorf("embedded YAML and DefaultFlappyConfig() differ:\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
}

func TestLoadFlappyCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := []byte("physics:\n  gravity: 1200\ndifficulty:\n  initial:\n    scroll_speed: 200\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.Gravity != 1200 {
		t.Errorf("gravity = %v, expected 1200", cfg.Physics.Gravity)
	}
	if cfg.Difficulty.Initial.ScrollSpeed != 200 {
		t.Errorf("scroll speed = %v, expected 200", cfg.Difficulty.Initial.ScrollSpeed)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.JumpImpulse != -330 {
		t.Errorf("jump impulse = %v, expected default -330", cfg.Physics.JumpImpulse)
	}
	if cfg.Difficulty.Initial.PipeGap != 170 {
		t.Errorf("pipe gap = %v, expected default 170", cfg.Difficulty.Initial.PipeGap)
	}
}

func TestLoadFlappyMissingCustomPath(t *testing.T) {
	if _, err := LoadFlappy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom config")
	}
}

func TestParseRejectsImpossibleGap(t *testing.T) {
	_, err := Parse([]byte("difficulty:\n  initial:\n    pipe_gap: 500\n"))
	if !errors.Is(err, ErrInvalidTunables) {
		t.Errorf("expected ErrInvalidTunables, got %v", err)
	}
}

func TestParseRejectsNonFinite(t *testing.T) {
	inputs := []string{
		"difficulty:\n  initial:\n    pipe_gap: .nan\n",
		"physics:\n  gravity: .inf\n",
		"world:\n  cull_threshold: -.inf\n",
	}
	for _, in := range inputs {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrInvalidTunables) {
			t.Errorf("Parse(%q): expected ErrInvalidTunables, got %v", in, err)
		}
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		speed   float64
	}{
		{DifficultyEasy, true, 170},
		{DifficultyNormal, true, 194},
		{DifficultyHard, true, 230},
		{DifficultyFixed, false, 170},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			ApplyFlappyPreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.Initial.ScrollSpeed != tc.speed {
				t.Errorf("initial speed = %v, expected %v", cfg.Difficulty.Initial.ScrollSpeed, tc.speed)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyEasy {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
