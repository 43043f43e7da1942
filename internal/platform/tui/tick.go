// Package tui provides the Bubble Tea front end for FloodRush: the game
// screen, menus, scoreboard, settings and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const maxTickRate = 240

// TickMsg drives one simulation step.
type TickMsg time.Time

// tickInterval converts a tick rate to a frame interval. Rates outside
// [1, maxTickRate] are clamped.
func tickInterval(rate int) time.Duration {
	rate = min(max(rate, 1), maxTickRate)
	return time.Second / time.Duration(rate)
}

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
