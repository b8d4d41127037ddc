package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultRunnerConfig returns the default Prompt Runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: RunnerWorld{
			Width:      800,
			Height:     200,
			GroundLine: 170,
		},
		Physics: RunnerPhysics{
			Gravity:       0.6,
			JumpImpulse:   -12,
			MaxFallSpeed:  0,
			ReferenceHz:   60,
			MaxFrameScale: 3,
		},
		Actor: RunnerActor{
			X:           50,
			Width:       30,
			Height:      40,
			HitboxInset: 4,
		},
		Obstacles: RunnerObstacles{
			SpawnOffset:   20,
			DespawnMargin: 100,
			FirstGap:      200,
			MinGap:        350,
			MaxGap:        650,
			GapFloor:      240,
			GapReduction:  30,
			Catalog: []ObstacleType{
				{Label: "TOKEN LIMIT", Width: 40, Height: 30, Color: "red"},
				{Label: "RATE LIMIT", Width: 30, Height: 40, Color: "orange"},
				{Label: "HALLUCINATION", Width: 60, Height: 25, Color: "magenta"},
				{Label: "TIMEOUT", Width: 25, Height: 45, Color: "yellow"},
				{Label: "BAD PROMPT", Width: 45, Height: 20, Color: "cyan"},
			},
		},
		Speed: RunnerSpeed{
			Base:      6,
			Increment: 0.6,
		},
		Scoring: RunnerScoring{
			PointsPerFrame: 1,
			ClearBonus:     50,
			LevelEvery:     1000,
			ReportEvery:    30,
		},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: SnakeBoard{
			Width:         20,
			Height:        20,
			InitialLength: 3,
		},
		Tick: SnakeTick{
			Base:  150 * time.Millisecond,
			Step:  10 * time.Millisecond,
			Floor: 60 * time.Millisecond,
		},
		Scoring: SnakeScoring{
			PointsPerApple: 10,
			ApplesPerLevel: 5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case RunnerID:
		return defaultRunnerYAML
	case SnakeID:
		return defaultSnakeYAML
	default:
		return nil
	}
}
