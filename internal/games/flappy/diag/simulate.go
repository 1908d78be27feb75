package diag

import (
	"time"

	"github.com/vovakirdan/skyflap/internal/games/flappy"
)

// Player is a game the autopilot can play from start to restart.
type Player interface {
	Game
	Update(dt time.Duration)
	RequestRestart() bool
}

// SimOptions bound a headless run.
type SimOptions struct {
	Lives     int           // Lives to play, at least 1
	MaxFrames int           // Frames one life may last; 0 means 10 minutes
	FrameTime time.Duration // Simulated frame length; 0 means 1/60 s
}

// LifeResult summarizes one life.
type LifeResult struct {
	Score     int
	Best      int
	NewRecord bool
	Frames    int
	TimedOut  bool // The life was still going after MaxFrames
}

// restartFrames is how long Simulate waits for a restart to land.
const restartFrames = 600

// Simulate lets the autopilot play lives back to back and reports each one.
// Lives that time out are ended with Die so the next one can start.
func Simulate(game Player, opts SimOptions) []LifeResult {
	if opts.Lives < 1 {
		opts.Lives = 1
	}
	if opts.FrameTime <= 0 {
		opts.FrameTime = time.Second / 60
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = int(10 * time.Minute / opts.FrameTime)
	}
	pilot := NewAutopilot()

	results := make([]LifeResult, 0, opts.Lives)
	for len(results) < opts.Lives {
		game.Flap()

		res := LifeResult{}
		for game.Snapshot().Phase == flappy.PhasePlaying {
			if res.Frames >= opts.MaxFrames {
				res.TimedOut = true
				game.Die()
				break
			}
			if pilot.Decide(game.Snapshot()) {
				game.Flap()
			}
			game.Update(opts.FrameTime)
			res.Frames++
		}

		snap := game.Snapshot()
		res.Score, res.Best, res.NewRecord = snap.Score, snap.BestScore, snap.NewRecord
		results = append(results, res)

		if len(results) == opts.Lives || !game.RequestRestart() {
			break
		}
		for i := 0; i < restartFrames && game.Snapshot().Phase != flappy.PhaseIdle; i++ {
			game.Update(opts.FrameTime)
		}
		if game.Snapshot().Phase != flappy.PhaseIdle {
			break
		}
	}
	return results
}
