package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/prompt-arcade/internal/platform/tui"
	"github.com/vovakirdan/prompt-arcade/internal/storage"
)

var paletteCmd = &cobra.Command{
	Use:     "palette",
	Aliases: []string{"menu"},
	Short:   "Start the arcade with a command palette",
	Long: `Start the arcade in interactive palette mode.

Type to filter the game list, Enter to launch the highlighted game.
Leaving a game (B/Esc) returns to the palette.

Controls:
  Up/Down      - Move the highlight
  Enter        - Launch game
  Tab          - High scores
  Esc          - Clear the filter, or quit when it is empty
  Ctrl+C       - Quit

Examples:
  arcade palette
  arcade palette --fps 30
  arcade palette --db ./scores.db`,
	Run: runPalette,
}

func init() {
	paletteCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for launched games: easy, normal, hard")
}

func runPalette(_ *cobra.Command, _ []string) {
	logger, closeLog, err := tuiLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig(logger)
	cfg.Difficulty = flagDifficulty

	runErr := tui.RunSession(store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
