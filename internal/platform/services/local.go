package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// MainBoard is the leaderboard that submitted scores land on.
const MainBoard = "main"

// Leaderboard stores submitted scores.
type Leaderboard interface {
	SubmitLeaderboard(board, player string, score int) error
}

// Local records submitted scores on a local leaderboard before forwarding
// them to the wrapped platform.
type Local struct {
	Services
	board  Leaderboard
	player string
	logger *log.Logger
}

// NewLocal wraps inner so that scores are also recorded for player.
func NewLocal(inner Services, board Leaderboard, player string, logger *log.Logger) *Local {
	return &Local{Services: inner, board: board, player: player, logger: logger}
}

// SubmitScore records score locally, then submits it to the platform.
func (l *Local) SubmitScore(ctx context.Context, score int) error {
	var localErr error
	if err := l.board.SubmitLeaderboard(MainBoard, l.player, score); err != nil {
		localErr = fmt.Errorf("services: local leaderboard: %w", err)
	} else {
		l.logger.Debug("score recorded", "board", MainBoard, "player", l.player, "score", score)
	}
	return errors.Join(localErr, l.Services.SubmitScore(ctx, score))
}
