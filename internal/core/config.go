package core

import (
	"io"

	"github.com/charmbracelet/log"
)

// RuntimeConfig contains configuration passed to games when they are created.
type RuntimeConfig struct {
	ScreenW    int         // Screen width in characters
	ScreenH    int         // Screen height in characters
	TickRate   int         // Display frames per second the host delivers (default 60)
	Seed       int64       // RNG seed for deterministic gameplay
	ConfigPath string      // Optional custom game config file
	Difficulty string      // Optional preset: easy, normal, hard
	Logger     *log.Logger // Optional; nil discards
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Log returns the configured logger, or one that discards everything.
func (c RuntimeConfig) Log() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(io.Discard)
}
