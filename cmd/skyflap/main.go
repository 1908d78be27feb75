// skyflap is a flappy arcade game for the terminal, playable locally or over SSH.
//
// Usage:
//
//	skyflap play              - Play in this terminal
//	skyflap serve             - Start SSH server for remote play
//	skyflap scores            - Show finished runs and the leaderboard
//	skyflap simulate          - Let the autopilot play headless lives
//	skyflap config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.skyflap/scores.db)
//	--config <path>     - Load a custom game config YAML
//	--difficulty <p>    - Difficulty preset: easy, normal, hard, fixed
//	--lang <code>       - Force the interface language (ru, en, tr)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
//	--dev               - Enable developer keys and the command console
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyflap/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLang       string
	flagLogLevel   string
	flagLogFile    string
	flagDev        bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyflap",
	Short: "Skyflap - Flap between buildings in your terminal",
	Long: `Skyflap is a one-button arcade game: keep the bird in the air and fly
through the gaps between buildings. Every five buildings the city speeds up.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View finished runs and the leaderboard
  simulate  - Let the autopilot play headless lives
  config    - Print the effective configuration

Examples:
  skyflap play
  skyflap play --difficulty hard --lang en
  skyflap serve --ssh :2222
  skyflap scores --board
  skyflap simulate --lives 20 --seed 7`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyflap/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "Interface language: ru, en, tr (default: platform, saved, then environment)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDev, "dev", false, "Enable developer keys and console")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the root logger. Logs go to --log-file when set and to
// fallback otherwise. The returned function closes the log file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadRawConfig loads the game config without applying any preset.
// --difficulty replaces the preset the file names.
func loadRawConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return config.FlappyConfig{}, err
		}
		cfg.Difficulty.Preset = flagDifficulty
	}
	return cfg, nil
}

// loadGameConfig loads the game config and applies its preset. The easy
// preset named by a file is a no-op so it cannot re-enable progression.
func loadGameConfig() (config.FlappyConfig, error) {
	cfg, err := loadRawConfig()
	if err != nil {
		return config.FlappyConfig{}, err
	}

	name := cfg.Difficulty.Preset
	if name == "" || (flagDifficulty == "" && name == string(config.DifficultyEasy)) {
		return cfg, nil
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	config.ApplyFlappyPreset(&cfg, preset)
	return cfg, nil
}

// exitOnError prints err and exits.
func exitOnError(what string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
		os.Exit(1)
	}
}
