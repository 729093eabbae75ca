// typejump is a terminal platformer where you climb by typing: a platform
// only holds you once you type the letter it carries.
//
// Usage:
//
//	typejump list              - List available modes
//	typejump play [mode]       - Play a mode (default: typejump)
//	typejump menu              - Pick a mode and difficulty interactively
//	typejump serve             - Start SSH server for remote play
//	typejump scores [mode]     - Show high scores for a mode
//	typejump config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Debug: fix the RNG seed of a run (hidden)
//	--db <path>     - Set database path (default: ~/.typejump/scores.db)
//	--debug         - Write a debug log to ~/.typejump/typejump.log
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/typejump/internal/config"
	"github.com/vovakirdan/typejump/internal/games/typejump"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagDebug  bool

	// Game flags shared by play and menu
	flagConfig     string
	flagDifficulty string
	flagSound      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "typejump",
	Short: "Typing Jump - climb by typing in your terminal",
	Long: `Typing Jump is an endless vertical platformer. Platforms only become
solid once you type the letter shown on them, so you have to type ahead of
your jumps. Fall out of view and the run is over.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the default configuration

Examples:
  typejump play
  typejump play typejump_arrows
  typejump menu --difficulty hard
  typejump serve --ssh :2222
  typejump scores`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Debug: RNG seed for the first run (0 = random based on time)")
	_ = rootCmd.PersistentFlags().MarkHidden("seed")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.typejump/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log to ~/.typejump/typejump.log")

	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "medium", "Difficulty preset: easy, medium, hard")
		cmd.Flags().BoolVar(&flagSound, "sound", true, "Play sound effects")
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger returns the file logger when --debug is set and a discarding
// logger otherwise, since the terminal belongs to the game.
func newLogger() (*log.Logger, io.Closer) {
	discard := log.New(io.Discard)
	if !flagDebug {
		return discard, io.NopCloser(nil)
	}

	dir := config.UserDir()
	if dir == "" {
		return discard, io.NopCloser(nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create %s: %v\n", dir, err)
		return discard, io.NopCloser(nil)
	}

	f, err := os.OpenFile(filepath.Join(dir, "typejump.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return discard, io.NopCloser(nil)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "typejump",
	})
	return logger, f
}

// configureGame applies the game flags to every run created afterwards.
func configureGame(logger *log.Logger) {
	typejump.SetConfigPath(flagConfig)
	typejump.SetDifficultyPreset(flagDifficulty)
	typejump.SetLogger(logger)
}
