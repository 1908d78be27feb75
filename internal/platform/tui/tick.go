// Package tui runs the game in a terminal with Bubble Tea, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// bannerMsg asks the game to show the platform banner.
type bannerMsg struct{}

// bannerDelay is how long after the session starts the banner is requested.
const bannerDelay = time.Second

func bannerCmd() tea.Cmd {
	return tea.Tick(bannerDelay, func(time.Time) tea.Msg {
		return bannerMsg{}
	})
}
