package storage

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// BestScoreKey is the settings key of the local player's best score.
const BestScoreKey = "flappy-best"

// BestScoreKeyFor returns the best score key for a named player.
// An empty name maps to the local player.
func BestScoreKeyFor(player string) string {
	if player == "" {
		return BestScoreKey
	}
	return BestScoreKey + ":" + player
}

// Settings is a durable string key-value store.
type Settings interface {
	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error
}

// BestScore persists a single best score in a Settings store.
// Read never fails: a missing, unreadable or corrupted value is 0.
// Write failures are logged and reported as false.
type BestScore struct {
	settings Settings
	key      string
	logger   *log.Logger
}

// NewBestScore creates a best score record stored under key.
func NewBestScore(settings Settings, key string, logger *log.Logger) *BestScore {
	return &BestScore{settings: settings, key: key, logger: logger}
}

// Read returns the stored best score, or 0.
func (b *BestScore) Read() int {
	raw, ok, err := b.settings.GetSetting(b.key)
	if err != nil {
		b.logger.Warn("best score unavailable", "key", b.key, "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || score < 0 {
		b.logger.Warn("ignoring corrupted best score", "key", b.key, "value", raw)
		return 0
	}
	return score
}

// Write stores score and reports whether it was persisted.
func (b *BestScore) Write(score int) bool {
	if err := b.settings.SetSetting(b.key, strconv.Itoa(score)); err != nil {
		b.logger.Warn("could not persist best score", "key", b.key, "score", score, "error", err)
		return false
	}
	return true
}

// MemorySettings is an in-process Settings store, used when the database is
// unavailable. Values last for the session only.
type MemorySettings struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemorySettings creates an empty in-memory settings store.
func NewMemorySettings() *MemorySettings {
	return &MemorySettings{values: make(map[string]string)}
}

// GetSetting implements Settings.
func (m *MemorySettings) GetSetting(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// SetSetting implements Settings.
func (m *MemorySettings) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

var (
	_ Settings = (*Store)(nil)
	_ Settings = (*MemorySettings)(nil)
)
