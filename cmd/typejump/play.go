package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/typejump/internal/audio"
	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/core"
	"github.com/vovakirdan/typejump/internal/games/typejump"
	"github.com/vovakirdan/typejump/internal/platform/tui"
	"github.com/vovakirdan/typejump/internal/registry"
	"github.com/vovakirdan/typejump/internal/session"
	"github.com/vovakirdan/typejump/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start a run of the specified mode (default: typejump).

Modes:
  typejump         - Platforms hold you only after you type their letter
  typejump_arrows  - Every platform is solid, no typing

Controls:
  Letters        - Type the letter shown on a platform (typing mode)
  Left/Right     - Move
  Down           - Stop
  Up/Space       - Jump
  Tab            - Pause
  Esc            - Quit
  R/Enter        - Restart (after game over)
  Ctrl+S         - Screenshot

Difficulty options:
  easy    - Slower pool growth, long re-enable delay
  medium  - Default tuning
  hard    - Fast pool growth, short re-enable delay

Examples:
  typejump play
  typejump play typejump_arrows
  typejump play --difficulty hard
  typejump play --config ./my-typejump.yaml --sound=false`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := typejump.ModeTyping
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'typejump list' to see available modes.")
		os.Exit(1)
	}
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}

	logger, logFile := newLogger()
	defer logFile.Close()

	configureGame(logger)
	player := setupSound(logger)
	defer player.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig(), flagDifficulty)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes a run to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// setupSound wires gameplay events to the speaker and the log. A missing
// audio device leaves the game silent.
func setupSound(logger *log.Logger) *audio.Player {
	sound := config.DefaultGameConfig().Sound
	if cfg, err := config.Load(flagConfig); err == nil {
		sound = cfg.Sound
	} else {
		logger.Warn("cannot load config for sound", "error", err)
	}
	sound.Enabled = sound.Enabled && flagSound

	player := audio.New(sound, logger)
	if sound.Enabled {
		_ = player.Init() // logged by Init
	}

	typejump.SetSink(session.MultiSink{player, session.LogSink{Logger: logger}})
	return player
}
