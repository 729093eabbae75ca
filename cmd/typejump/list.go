package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typejump/internal/registry"
	"github.com/vovakirdan/typejump/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the climbing modes",
	Long: `Shows the typing and arrows modes with their best recorded height.

Examples:
  typejump list
  typejump list --db ./scores.db`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes registered.")
		return
	}

	// Best scores are a bonus; listing works without a database
	store, err := storage.Open(flagDBPath)
	if err != nil {
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	idWidth := len("Mode")
	for _, m := range modes {
		idWidth = max(idWidth, len(m.ID))
	}

	fmt.Printf("  %-*s  %-6s  %s\n", idWidth, "Mode", "Best", "How to climb")
	fmt.Printf("  %-*s  %-6s  %s\n", idWidth, "----", "----", "------------")
	for _, m := range modes {
		best := "-"
		if store != nil {
			if high, err := store.HighScore(m.ID); err == nil && high > 0 {
				best = fmt.Sprint(high)
			}
		}
		fmt.Printf("  %-*s  %-6s  %s\n", idWidth, m.ID, best, m.Description)
	}

	fmt.Println()
	fmt.Println("Start one with 'typejump play <mode>' or pick it in 'typejump menu'.")
}
