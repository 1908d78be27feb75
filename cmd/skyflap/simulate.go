package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyflap/internal/games/flappy"
	"github.com/vovakirdan/skyflap/internal/games/flappy/diag"
	"github.com/vovakirdan/skyflap/internal/platform/services"
)

var (
	flagSimLives   int
	flagSimMinutes int
	flagSimStrict  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot play headless lives",
	Long: `Play lives with the autopilot and no terminal, as fast as possible.
Nothing is saved. Useful to check a config or difficulty preset.

Examples:
  skyflap simulate
  skyflap simulate --lives 50 --seed 7 --difficulty hard
  skyflap simulate --strict --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimLives, "lives", 10, "Lives to play")
	simulateCmd.Flags().IntVar(&flagSimMinutes, "max-minutes", 10, "Simulated minutes one life may last")
	simulateCmd.Flags().BoolVar(&flagSimStrict, "strict", false, "Panic on inconsistent tunables instead of clamping")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr, "skyflap-sim")
	exitOnError("creating logger", err)
	defer closeLog()

	cfg, err := loadGameConfig()
	exitOnError("loading config", err)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	frame := time.Second / time.Duration(max(flagFPS, 1))

	game := flappy.NewController(flappy.Options{
		Config:   cfg,
		Seed:     seed,
		Services: services.Offline{},
		Logger:   logger.WithPrefix("game"),
		Strict:   flagSimStrict,
		Runner:   func(fn func()) { fn() },
	})

	start := time.Now()
	results := diag.Simulate(game, diag.SimOptions{
		Lives:     flagSimLives,
		MaxFrames: flagSimMinutes * 60 * max(flagFPS, 1),
		FrameTime: frame,
	})

	fmt.Printf("Simulated %d lives (seed %d, preset %s)\n", len(results), seed, cfg.Difficulty.Preset)
	fmt.Println()
	fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "Life", "Score", "Seconds", "")
	fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "----", "-----", "-------", "")

	total, best := 0, 0
	for i, r := range results {
		note := ""
		switch {
		case r.TimedOut:
			note = "time limit"
		case r.NewRecord:
			note = "new record"
		}
		secs := time.Duration(r.Frames) * frame
		fmt.Printf("  %-4d  %-6d  %-8.1f  %s\n", i+1, r.Score, secs.Seconds(), note)
		total += r.Score
		best = max(best, r.Score)
	}

	fmt.Println()
	if len(results) > 0 {
		fmt.Printf("Best: %d  Average: %.1f  Wall time: %s\n",
			best, float64(total)/float64(len(results)), time.Since(start).Round(time.Millisecond))
	}
}
