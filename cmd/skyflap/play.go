package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyflap/internal/core"
	"github.com/vovakirdan/skyflap/internal/i18n"
	"github.com/vovakirdan/skyflap/internal/platform/services"
	"github.com/vovakirdan/skyflap/internal/platform/tui"
	"github.com/vovakirdan/skyflap/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Space/Up/W - Start / flap
  Enter/R    - Play again (after game over)
  P          - Pause
  L          - Switch language
  Tab        - Scores (when not flying)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Developer keys (--dev):
  Ctrl+B     - Toggle autopilot
  Ctrl+K     - Die
  +          - Add a point
  :          - Console (score 5, speed 220, gap 140, bot on, die)

Difficulty options:
  easy   - Start at the initial tunables
  normal - Start two milestones in
  hard   - Start five milestones in
  fixed  - No progression, stays at the initial tunables

Examples:
  skyflap play
  skyflap play --difficulty hard
  skyflap play --lang tr --log-file /tmp/skyflap.log
  skyflap play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	// Logs would corrupt the alt screen unless they go to a file
	logger, closeLog, err := newLogger(io.Discard, "skyflap")
	exitOnError("creating logger", err)
	defer closeLog()

	cfg, err := loadGameConfig()
	exitOnError("loading config", err)

	runtime := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}
	if flagFPS > 0 {
		runtime.TickRate = flagFPS
	}
	runtime.Seed = flagSeed

	svc, err := services.FromConfig(cfg.Platform, flagSeed, logger.WithPrefix("platform"))
	exitOnError("creating platform", err)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.SessionOptions{
		Config:    cfg,
		Runtime:   runtime,
		Store:     store,
		Services:  svc,
		Logger:    logger,
		Dev:       flagDev,
		Lang:      flagLang,
		EnvLocale: i18n.EnvLocale(os.Getenv),
	})

	if store != nil {
		store.Close()
	}

	exitOnError("running game", runErr)
}
