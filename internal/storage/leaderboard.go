package storage

import (
	"fmt"
	"time"
)

// LeaderboardEntry is a player's best submitted score on a board.
type LeaderboardEntry struct {
	Board     string
	Player    string
	Score     int
	UpdatedAt time.Time
}

// SubmitLeaderboard records score for player on board.
// A player keeps only their best submission; lower scores are ignored.
func (s *Store) SubmitLeaderboard(board, player string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO leaderboard (board, player, score) VALUES (?, ?, ?)
		 ON CONFLICT(board, player) DO UPDATE
		 SET score = excluded.score, updated_at = CURRENT_TIMESTAMP
		 WHERE excluded.score > leaderboard.score`,
		board, player, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot submit leaderboard score: %w", err)
	}
	return nil
}

// Leaderboard returns the top entries of board, best first.
func (s *Store) Leaderboard(board string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT board, player, score, updated_at
		 FROM leaderboard
		 WHERE board = ?
		 ORDER BY score DESC, updated_at ASC
		 LIMIT ?`,
		board, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var updatedAt any
		if err := rows.Scan(&e.Board, &e.Player, &e.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}
