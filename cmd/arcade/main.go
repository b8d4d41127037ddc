// arcade is a terminal arcade with a shared real-time simulation core.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade palette           - Command palette to pick games interactively
//	arcade scores <game>     - Show high scores for a game
//	arcade config <game>     - Print the effective game config
//	arcade serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Display refresh rate (default: 60)
//	--seed <value>        - RNG seed for reproducible gameplay
//	--db <path>           - Database path (default: ~/.arcade/scores.db, env ARCADE_DB)
//	--log-level <level>   - debug, info, warn, error (env ARCADE_LOG_LEVEL)
//	--log-file <path>     - Write logs to a file while the TUI owns the terminal
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/prompt-arcade/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/prompt-arcade/internal/games/runner"
	_ "github.com/vovakirdan/prompt-arcade/internal/games/snake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Prompt Arcade - real-time games in your terminal",
	Long: `Prompt Arcade runs Snake and Prompt Runner on a shared simulation core:
a frame clock, a grid stepper, a physics integrator and one session state
machine with score and level events.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  palette  - Interactive command palette
  scores   - View high scores
  config   - Print a game's effective configuration
  serve    - Start SSH server for remote play

Examples:
  arcade list
  arcade play runner
  arcade play snake --difficulty hard
  arcade palette
  arcade serve --ssh :2222
  arcade scores snake`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	// A missing .env is fine; a malformed one is ignored the same way
	_ = godotenv.Load()

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display refresh rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for TUI commands (default: discard)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// applyEnv fills flags the user did not set from ARCADE_* variables.
func applyEnv(cmd *cobra.Command, _ []string) error {
	overrides := []struct {
		flag, env string
		target    *string
	}{
		{"db", "ARCADE_DB", &flagDBPath},
		{"log-level", "ARCADE_LOG_LEVEL", &flagLogLevel},
	}
	for _, o := range overrides {
		if f := cmd.Flag(o.flag); f != nil && f.Changed {
			continue
		}
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}

	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	return nil
}

// newLogger creates a logger at the configured level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// tuiLogger returns a logger that never writes to the terminal the TUI
// draws on: --log-file when set, otherwise a discarding one.
func tuiLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, "arcade"), func() { f.Close() }, nil
}

// runtimeConfig builds the per-game runtime config from the global flags
// and the current terminal size.
func runtimeConfig(logger *log.Logger) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Logger = logger
	return cfg
}
