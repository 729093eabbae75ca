package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/platform/tui"
	"github.com/vovakirdan/typejump/internal/registry"
	"github.com/vovakirdan/typejump/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty interactively",
	Long: `Start Typing Jump in interactive menu mode.

Use Up/Down to pick a mode, Left/Right to change difficulty and Enter to
play. After a run ends, Esc returns to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Start run
  Tab             - Scoreboard
  Q/Esc           - Quit

Examples:
  typejump menu
  typejump menu --difficulty hard
  typejump menu --fps 30 --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, logFile := newLogger()
	defer logFile.Close()

	configureGame(logger)
	player := setupSound(logger)
	defer player.Close()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()
	difficulty := flagDifficulty
	if _, ok := config.ParsePreset(difficulty); !ok {
		difficulty = string(config.DifficultyMedium)
	}

	ranOnce := false

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, difficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		difficulty = string(menuResult.Difficulty)

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if dg, ok := game.(interface{ SetDifficulty(string) }); ok {
			dg.SetDifficulty(difficulty)
		}

		// Fresh seed for each run; a debug seed only covers the first one
		if ranOnce || cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		ranOnce = true

		if err := tui.Run(game, store, cfg, difficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
