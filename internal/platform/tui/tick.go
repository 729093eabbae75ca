// Package tui runs Typing Jump in a terminal with Bubble Tea: the mode
// picker, the fixed-rate game loop, the scoreboard and the SSH front end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/typejump/internal/config"
)

// TickMsg asks the running climb to advance by one simulation step.
type TickMsg time.Time

// frameInterval is the wall-clock length of one step at tickRate. The
// physics and cooldowns are tuned against config.DefaultTickRate.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = config.DefaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next simulation step.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
