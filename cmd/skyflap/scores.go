package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyflap/internal/i18n"
	"github.com/vovakirdan/skyflap/internal/platform/services"
	"github.com/vovakirdan/skyflap/internal/platform/tui"
	"github.com/vovakirdan/skyflap/internal/storage"
)

var (
	flagBoard     bool
	flagClear     bool
	flagResetBest bool
	flagPlayer    string
	flagScoresTUI bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show finished runs and the leaderboard",
	Long: `Display the top 10 finished runs, or the leaderboard with --board.

Examples:
  skyflap scores
  skyflap scores --board
  skyflap scores --tui
  skyflap scores --clear
  skyflap scores --reset-best --player alice`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBoard, "board", false, "Show the leaderboard instead of finished runs")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every finished run")
	scoresCmd.Flags().BoolVar(&flagResetBest, "reset-best", false, "Forget the stored best score")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "SSH user whose best score --reset-best forgets (default: local player)")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := tui.RunsGameID
	if len(args) == 1 && args[0] != gameID {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
		fmt.Fprintf(os.Stderr, "The only game is %q.\n", gameID)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	exitOnError("opening scores database", err)
	defer store.Close()

	switch {
	case flagClear:
		high, err := store.HighScore(gameID)
		exitOnError("reading high score", err)
		exitOnError("clearing scores", store.ClearScores(gameID))
		fmt.Printf("Finished runs cleared (high score was %d).\n", high)

	case flagResetBest:
		key := storage.BestScoreKeyFor(flagPlayer)
		exitOnError("resetting best score", store.DeleteSetting(key))
		fmt.Printf("Best score %q forgotten.\n", key)

	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		loc := i18n.New(store, nil)
		loc.Resolve(flagLang, i18n.EnvLocale(os.Getenv))
		exitOnError("running scoreboard", tui.RunScoreboard(store, loc, width, height))

	case flagBoard:
		printLeaderboard(store)

	default:
		printRuns(store, gameID)
	}
}

func printRuns(store *storage.Store, gameID string) {
	scores, err := store.TopScores(gameID, 10)
	exitOnError("retrieving scores", err)

	fmt.Println("High Scores - Skyflap")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skyflap play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	high, err := store.HighScore(gameID)
	exitOnError("reading high score", err)
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Average: %.1f\n", high, stats.GamesCount, stats.AvgScore)
	}
}

func printLeaderboard(store *storage.Store) {
	entries, err := store.Leaderboard(services.MainBoard, 10)
	exitOnError("retrieving leaderboard", err)

	fmt.Println("Leaderboard - Skyflap")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("Nobody is on the board yet.")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "----", "------", "-----", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-16s  %-6d  %s\n", i+1, e.Player, e.Score, e.UpdatedAt.Format("2006-01-02 15:04"))
	}
}
