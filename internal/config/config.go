// Package config provides YAML-based game configuration loading and
// difficulty scaling for the arcade games.
package config

import (
	"errors"
	"fmt"
	"time"
)

// RunnerConfig contains all configuration for Prompt Runner.
// Distances are in world units; the renderer scales them to the terminal.
type RunnerConfig struct {
	World     RunnerWorld     `yaml:"world"`
	Physics   RunnerPhysics   `yaml:"physics"`
	Actor     RunnerActor     `yaml:"actor"`
	Obstacles RunnerObstacles `yaml:"obstacles"`
	Speed     RunnerSpeed     `yaml:"speed"`
	Scoring   RunnerScoring   `yaml:"scoring"`
}

// RunnerWorld defines the simulated playfield.
type RunnerWorld struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	GroundLine float64 `yaml:"ground_line"` // Y of the ground surface, y grows downward
}

// RunnerPhysics defines integration parameters. Values are per logical frame.
type RunnerPhysics struct {
	Gravity       float64 `yaml:"gravity"`
	JumpImpulse   float64 `yaml:"jump_impulse"`   // Negative: upward
	MaxFallSpeed  float64 `yaml:"max_fall_speed"` // 0 = unlimited
	ReferenceHz   int     `yaml:"reference_hz"`
	MaxFrameScale float64 `yaml:"max_frame_scale"`
}

// RunnerActor defines the player character.
type RunnerActor struct {
	X           float64 `yaml:"x"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	HitboxInset float64 `yaml:"hitbox_inset"`
}

// ObstacleType is one entry of the obstacle catalog.
type ObstacleType struct {
	Label  string  `yaml:"label"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color"`
}

// RunnerObstacles defines spawning and despawning.
type RunnerObstacles struct {
	SpawnOffset   float64        `yaml:"spawn_offset"`
	DespawnMargin float64        `yaml:"despawn_margin"`
	FirstGap      float64        `yaml:"first_gap"`
	MinGap        float64        `yaml:"min_gap"`
	MaxGap        float64        `yaml:"max_gap"`
	GapFloor      float64        `yaml:"gap_floor"`
	GapReduction  float64        `yaml:"gap_reduction"` // Per level above 1
	Catalog       []ObstacleType `yaml:"catalog"`
}

// RunnerSpeed defines horizontal scroll speed.
type RunnerSpeed struct {
	Base      float64 `yaml:"base"`
	Increment float64 `yaml:"increment"` // Per level above 1
}

// RunnerScoring defines score and level progression.
type RunnerScoring struct {
	PointsPerFrame float64 `yaml:"points_per_frame"`
	ClearBonus     int     `yaml:"clear_bonus"`
	LevelEvery     int     `yaml:"level_every"`
	ReportEvery    float64 `yaml:"report_every"` // Logical frames between OnScore notifications
}

// Validate reports the first parameter that would make the game unplayable.
func (c RunnerConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return errors.New("world: width and height must be positive")
	case c.World.GroundLine <= c.Actor.Height || c.World.GroundLine > c.World.Height:
		return fmt.Errorf("world: ground_line %.0f must leave room for the actor", c.World.GroundLine)
	case c.Physics.Gravity <= 0:
		return errors.New("physics: gravity must be positive")
	case c.Physics.JumpImpulse >= 0:
		return errors.New("physics: jump_impulse must be negative")
	case c.Physics.MaxFallSpeed < 0:
		return errors.New("physics: max_fall_speed must not be negative")
	case c.Physics.ReferenceHz <= 0 || c.Physics.MaxFrameScale <= 0:
		return errors.New("physics: reference_hz and max_frame_scale must be positive")
	case c.Actor.Width <= 0 || c.Actor.Height <= 0:
		return errors.New("actor: width and height must be positive")
	case c.Actor.HitboxInset < 0:
		return errors.New("actor: hitbox_inset must not be negative")
	case c.Obstacles.MinGap <= 0 || c.Obstacles.MaxGap < c.Obstacles.MinGap:
		return fmt.Errorf("obstacles: invalid gap range [%.0f, %.0f]", c.Obstacles.MinGap, c.Obstacles.MaxGap)
	case c.Obstacles.GapFloor <= 0:
		return errors.New("obstacles: gap_floor must be positive")
	case c.Obstacles.GapReduction < 0 || c.Obstacles.DespawnMargin < 0:
		return errors.New("obstacles: gap_reduction and despawn_margin must not be negative")
	case len(c.Obstacles.Catalog) == 0:
		return errors.New("obstacles: catalog is empty")
	case c.Speed.Base <= 0 || c.Speed.Increment < 0:
		return errors.New("speed: base must be positive and increment non-negative")
	case c.Scoring.LevelEvery <= 0:
		return errors.New("scoring: level_every must be positive")
	case c.Scoring.PointsPerFrame < 0 || c.Scoring.ClearBonus < 0:
		return errors.New("scoring: points must not be negative")
	}
	for i, t := range c.Obstacles.Catalog {
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("obstacles: catalog[%d] %q has no size", i, t.Label)
		}
		if t.Height >= c.World.GroundLine {
			return fmt.Errorf("obstacles: catalog[%d] %q is taller than the world", i, t.Label)
		}
	}
	return nil
}

// SnakeConfig contains all configuration for Snake.
type SnakeConfig struct {
	Board   SnakeBoard   `yaml:"board"`
	Tick    SnakeTick    `yaml:"tick"`
	Scoring SnakeScoring `yaml:"scoring"`
}

// SnakeBoard defines the grid.
type SnakeBoard struct {
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	InitialLength int `yaml:"initial_length"`
}

// SnakeTick defines the logic interval and how it shrinks with level.
type SnakeTick struct {
	Base  time.Duration `yaml:"base"`
	Step  time.Duration `yaml:"step"`
	Floor time.Duration `yaml:"floor"`
}

// SnakeScoring defines apple points and level progression.
type SnakeScoring struct {
	PointsPerApple int `yaml:"points_per_apple"` // Multiplied by level
	ApplesPerLevel int `yaml:"apples_per_level"`
}

// Validate reports the first parameter that would make the game unplayable.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Board.Width < 5 || c.Board.Height < 5:
		return fmt.Errorf("board: %dx%d is too small (min 5x5)", c.Board.Width, c.Board.Height)
	case c.Board.InitialLength < 1 || c.Board.InitialLength > c.Board.Width/2:
		return fmt.Errorf("board: initial_length %d must fit in half the board width", c.Board.InitialLength)
	case c.Tick.Floor <= 0:
		return errors.New("tick: floor must be positive")
	case c.Tick.Base < c.Tick.Floor:
		return fmt.Errorf("tick: base %v is below floor %v", c.Tick.Base, c.Tick.Floor)
	case c.Tick.Step < 0:
		return errors.New("tick: step must not be negative")
	case c.Scoring.PointsPerApple <= 0:
		return errors.New("scoring: points_per_apple must be positive")
	case c.Scoring.ApplesPerLevel <= 0:
		return errors.New("scoring: apples_per_level must be positive")
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI value to a preset. Empty means "use the config as is".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", name)
	}
}
