package diag

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/games/flappy"
)

func newGame() *flappy.Controller {
	return flappy.NewController(flappy.Options{
		Config: config.DefaultFlappyConfig(),
		Seed:   11,
		Strict: true,
		Runner: func(fn func()) { fn() },
	})
}

func TestAutopilotDecide(t *testing.T) {
	world := config.DefaultFlappyConfig().World
	pilot := NewAutopilot()

	tests := []struct {
		name     string
		snap     flappy.Snapshot
		expected bool
	}{
		{
			name: "not playing",
			snap: flappy.Snapshot{State: flappy.State{Phase: flappy.PhaseIdle}, World: world,
				Player: flappy.Player{X: 90, Y: 600, VelocityY: 100}},
			expected: false,
		},
		{
			name: "falling in lower half",
			snap: flappy.Snapshot{State: flappy.State{Phase: flappy.PhasePlaying}, World: world,
				Player: flappy.Player{X: 90, Y: 400, VelocityY: 50}},
			expected: true,
		},
		{
			name: "rising in lower half",
			snap: flappy.Snapshot{State: flappy.State{Phase: flappy.PhasePlaying}, World: world,
				Player: flappy.Player{X: 90, Y: 400, VelocityY: -50}},
			expected: false,
		},
		{
			name: "below upcoming gap",
			snap: flappy.Snapshot{State: flappy.State{Phase: flappy.PhasePlaying}, World: world,
				Player:    flappy.Player{X: 90, Y: 250, VelocityY: -10},
				Obstacles: []flappy.Obstacle{{Role: flappy.RoleTop, X: 180, GapCenter: 200}}},
			expected: true,
		},
		{
			name: "inside gap margin",
			snap: flappy.Snapshot{State: flappy.State{Phase: flappy.PhasePlaying}, World: world,
				Player:    flappy.Player{X: 90, Y: 215, VelocityY: 10},
				Obstacles: []flappy.Obstacle{{Role: flappy.RoleTop, X: 180, GapCenter: 200}}},
			expected: false,
		},
		{
			name: "building out of reach",
			snap: flappy.Snapshot{State: flappy.State{Phase: flappy.PhasePlaying}, World: world,
				Player:    flappy.Player{X: 90, Y: 250, VelocityY: -10},
				Obstacles: []flappy.Obstacle{{Role: flappy.RoleTop, X: 400, GapCenter: 100}}},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pilot.Decide(tc.snap); got != tc.expected {
				t.Errorf("Decide() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAutopilotScores(t *testing.T) {
	game := newGame()
	console := NewConsole(game, log.New(io.Discard))
	console.SetBot(true)

	game.Flap()
	for i := 0; i < 60*60 && game.Phase() == flappy.PhasePlaying; i++ {
		console.Tick()
		game.Update(time.Second / 60)
	}

	if game.Score() < 3 {
		t.Errorf("autopilot only reached score %d in a minute", game.Score())
	}
}

func TestConsoleCommands(t *testing.T) {
	game := newGame()
	console := NewConsole(game, log.New(io.Discard))
	game.Flap()

	if err := console.Exec("score 5"); err != nil {
		t.Fatalf("score: %v", err)
	}
	snap := game.Snapshot()
	if snap.Score != 5 || snap.ScrollSpeed != 182 {
		t.Errorf("score %d speed %v, expected 5 and one milestone applied", snap.Score, snap.ScrollSpeed)
	}

	if err := console.Exec("speed 250"); err != nil {
		t.Fatalf("speed: %v", err)
	}
	if game.Snapshot().ScrollSpeed != 250 {
		t.Error("speed override not applied")
	}

	if err := console.Exec("gap 9000"); !errors.Is(err, config.ErrInvalidTunables) {
		t.Errorf("expected ErrInvalidTunables, got %v", err)
	}

	if err := console.Exec("teleport"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}

	if err := console.Exec("bot on"); err != nil || !console.Bot() {
		t.Errorf("bot on: %v, enabled %v", err, console.Bot())
	}
	if err := console.Exec("bot"); err != nil || console.Bot() {
		t.Errorf("bot toggle: %v, enabled %v", err, console.Bot())
	}

	if err := console.Exec("die"); err != nil {
		t.Fatalf("die: %v", err)
	}
	if game.Phase() != flappy.PhaseGameOver {
		t.Errorf("Phase = %v after die", game.Phase())
	}
}

func TestConsoleRejectsUnsafeValues(t *testing.T) {
	game := flappy.NewController(flappy.Options{
		Config: config.DefaultFlappyConfig(),
		Seed:   11,
		Runner: func(fn func()) { fn() },
	})
	console := NewConsole(game, log.New(io.Discard))
	game.Flap()
	before := game.Snapshot().Tunables

	for _, line := range []string{"gap NaN", "gap +Inf", "speed NaN", "shift -Inf"} {
		if err := console.Exec(line); !errors.Is(err, config.ErrInvalidTunables) {
			t.Errorf("%q: expected ErrInvalidTunables, got %v", line, err)
		}
	}
	if got := game.Snapshot().Tunables; got != before {
		t.Errorf("tunables changed to %+v", got)
	}

	// The spawn cadence keeps running on the untouched tunables
	game.Update(2 * time.Second)

	if err := console.Exec("score 2000000000"); err == nil {
		t.Error("expected an error for an oversized score step")
	}
	if game.Snapshot().Score != 0 {
		t.Errorf("Score = %d after a rejected step", game.Snapshot().Score)
	}
	if err := console.Exec("score 1000"); err != nil {
		t.Errorf("score 1000: %v", err)
	}
}

func TestSimulate(t *testing.T) {
	game := newGame()
	results := Simulate(game, SimOptions{Lives: 3, MaxFrames: 60 * 30})

	if len(results) != 3 {
		t.Fatalf("played %d lives, expected 3", len(results))
	}
	best := 0
	for i, r := range results {
		if r.Frames == 0 {
			t.Errorf("life %d lasted no frames", i)
		}
		if r.Score > best {
			best = r.Score
		}
		if r.Best != best {
			t.Errorf("life %d: best %d, expected %d", i, r.Best, best)
		}
	}
	if game.Phase() != flappy.PhaseGameOver {
		t.Errorf("Phase = %v after the last life", game.Phase())
	}
}

func TestSimulateTimesOut(t *testing.T) {
	game := newGame()
	results := Simulate(game, SimOptions{Lives: 1, MaxFrames: 10})

	if len(results) != 1 || !results[0].TimedOut || results[0].Frames != 10 {
		t.Fatalf("unexpected results %+v", results)
	}
	if game.Phase() != flappy.PhaseGameOver {
		t.Errorf("Phase = %v, expected the timed out life to end", game.Phase())
	}
}
