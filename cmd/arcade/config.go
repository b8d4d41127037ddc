package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/prompt-arcade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print a game's effective configuration",
	Long: `Print the configuration a game would run with, as YAML.

The file search order is --config, then $ARCADE_CONFIG_DIR (or
~/.arcade/configs)/<game>.yaml, then ./configs/<game>.yaml, then the
built-in defaults. The difficulty preset is applied last.

Examples:
  arcade config runner
  arcade config snake --difficulty hard
  arcade config runner > ~/.arcade/configs/runner.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runConfig(_ *cobra.Command, args []string) {
	out, err := effectiveConfig(args[0], flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

// effectiveConfig loads a game config, applies the preset and encodes it.
func effectiveConfig(gameID, path, difficulty string) ([]byte, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return nil, err
	}

	switch gameID {
	case config.RunnerID:
		cfg, err := config.LoadRunner(path)
		if err != nil {
			return nil, err
		}
		config.ApplyRunnerPreset(&cfg, preset)
		return config.Marshal(cfg)
	case config.SnakeID:
		cfg, err := config.LoadSnake(path)
		if err != nil {
			return nil, err
		}
		config.ApplySnakePreset(&cfg, preset)
		return config.Marshal(cfg)
	}
	return nil, fmt.Errorf("unknown game %q", gameID)
}
