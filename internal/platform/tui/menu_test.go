package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/typejump/internal/config"
)

func sendMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, expected MenuModel", next)
	}
	return mm
}

func TestMenuDifficultySelector(t *testing.T) {
	m := NewMenuModel(nil, testRuntime(), "hard")
	if m.Difficulty() != config.DifficultyHard {
		t.Fatalf("Difficulty() = %q, expected hard", m.Difficulty())
	}

	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Difficulty() != config.DifficultyHard {
		t.Errorf("Difficulty() = %q, expected to stay at hard", m.Difficulty())
	}

	m = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = sendMenu(t, m, runeKey('h'))
	m = sendMenu(t, m, runeKey('h'))
	if m.Difficulty() != config.DifficultyEasy {
		t.Errorf("Difficulty() = %q, expected easy", m.Difficulty())
	}
}

func TestMenuUnknownDifficultyDefaultsToMedium(t *testing.T) {
	m := NewMenuModel(nil, testRuntime(), "")
	if m.Difficulty() != config.DifficultyMedium {
		t.Errorf("Difficulty() = %q, expected medium", m.Difficulty())
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := sendMenu(t, NewMenuModel(nil, testRuntime(), ""), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = sendMenu(t, NewMenuModel(nil, testRuntime(), ""), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.Selected() != nil {
		t.Error("nothing should be selected")
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := sendMenu(t, NewMenuModel(nil, testRuntime(), ""), tea.WindowSizeMsg{Width: 120, Height: 50})
	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 50 {
		t.Errorf("Config() = %dx%d, expected 120x50", cfg.ScreenW, cfg.ScreenH)
	}
}
