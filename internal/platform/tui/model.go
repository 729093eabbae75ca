package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/typejump/internal/core"
	"github.com/vovakirdan/typejump/internal/registry"
	"github.com/vovakirdan/typejump/internal/storage"
)

// Terminals report key presses but not releases. A direction counts as held
// for a while after each press; the first press covers the auto-repeat delay.
const (
	holdInitial = 450 * time.Millisecond
	holdRepeat  = 120 * time.Millisecond
)

// typingGame is implemented by modes whose letters drive the game.
type typingGame interface {
	Gated() bool
}

// timedGame is implemented by modes that track their simulated duration.
type timedGame interface {
	Elapsed() time.Duration
}

// GameModel is the Bubble Tea model for a running game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	difficulty string
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // Back quits instead of returning to a menu

	leftHold  int // Remaining ticks a direction counts as held
	rightHold int

	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, difficulty string) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	typing := false
	if tg, ok := game.(typingGame); ok {
		typing = tg.Gated()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		difficulty: difficulty,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(typing),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keyMapper.MapKey(msg, m.gameState.GameOver) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.saveRun()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	case core.ActionLeft:
		m.rightHold = 0
		m.leftHold = m.hold(m.leftHold)
		return m, nil
	case core.ActionRight:
		m.leftHold = 0
		m.rightHold = m.hold(m.rightHold)
		return m, nil
	case core.ActionDown:
		m.leftHold, m.rightHold = 0, 0
		return m, nil
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame, m.gameState.GameOver)
	return m, nil
}

// hold returns the new hold length for a direction pressed again.
func (m GameModel) hold(current int) int {
	window := holdRepeat
	if current == 0 {
		window = holdInitial
	}
	ticks := int(window * time.Duration(m.config.TickRate) / time.Second)
	return max(current, ticks, 1)
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.leftHold, m.rightHold = 0, 0
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.leftHold > 0 {
		m.inputFrame.Set(core.ActionLeft)
		m.leftHold--
	}
	if m.rightHold > 0 {
		m.inputFrame.Set(core.ActionRight)
		m.rightHold--
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run once.
func (m *GameModel) saveRun() {
	if m.scoreSaved || !m.gameState.GameOver {
		return
	}
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	run := storage.Run{
		Mode:       m.game.ID(),
		Difficulty: m.difficulty,
		Score:      m.gameState.Score,
		Correct:    m.gameState.Correct,
		Incorrect:  m.gameState.Incorrect,
		Accuracy:   m.gameState.Accuracy,
	}
	if tg, ok := m.game.(timedGame); ok {
		run.Duration = tg.Elapsed()
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(run)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".typejump", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a single game in the terminal.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, difficulty string) error {
	model := NewGameModel(game, store, cfg, difficulty)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
