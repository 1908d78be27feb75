// Package flappy implements the flappy game loop: a player-controlled bird
// dodging a stream of building pairs while the difficulty ramps up.
//
// The Controller owns all game state and is driven by a single goroutine
// calling Update with the elapsed time of each frame. Platform calls run
// elsewhere and post their results back through a mailbox drained at the
// start of Update.
package flappy

import (
	"github.com/vovakirdan/skyflap/internal/config"
)

// Phase is the coarse lifecycle state of a game.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// State is the mutable game state owned by the Controller.
type State struct {
	Phase     Phase
	Score     int
	BestScore int
	NewRecord bool // The last death set a new best score
	config.Tunables
	LastGapCenter float64
}

// ScoreStore persists the best score.
// Read returns 0 when nothing usable is stored; Write reports success.
type ScoreStore interface {
	Read() int
	Write(score int) bool
}

// Snapshot is a read-only copy of everything needed to draw a frame.
type Snapshot struct {
	State
	Paused         bool
	RestartPending bool
	Player         Player
	Obstacles      []Obstacle
	World          config.WorldConfig
	Life           int
}
