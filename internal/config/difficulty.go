package config

import (
	"math"
	"time"
)

// RunnerScaling maps the runner's level to speed and spawn gaps.
type RunnerScaling struct {
	speed      RunnerSpeed
	obstacles  RunnerObstacles
	levelEvery int
}

// NewRunnerScaling creates a scaler from runner config.
func NewRunnerScaling(cfg RunnerConfig) RunnerScaling {
	return RunnerScaling{
		speed:      cfg.Speed,
		obstacles:  cfg.Obstacles,
		levelEvery: max(1, cfg.Scoring.LevelEvery),
	}
}

// Speed returns world units scrolled per logical frame at level.
func (s RunnerScaling) Speed(level int) float64 {
	return s.speed.Base + float64(max(level, 1)-1)*s.speed.Increment
}

// GapRange returns the bounds the spawner draws a raw gap from.
func (s RunnerScaling) GapRange() (lo, hi float64) {
	return s.obstacles.MinGap, s.obstacles.MaxGap
}

// SpawnGap shrinks a drawn gap for level and floors it so the game stays
// playable at any level.
func (s RunnerScaling) SpawnGap(level int, drawn float64) float64 {
	gap := drawn - float64(max(level, 1)-1)*s.obstacles.GapReduction
	return math.Max(s.obstacles.GapFloor, gap)
}

// LevelForScore returns 1 + one level per levelEvery points.
func (s RunnerScaling) LevelForScore(score int) int {
	if score < 0 {
		return 1
	}
	return 1 + score/s.levelEvery
}

// SnakeScaling maps the snake's level to its tick interval.
type SnakeScaling struct {
	tick           SnakeTick
	applesPerLevel int
}

// NewSnakeScaling creates a scaler from snake config.
func NewSnakeScaling(cfg SnakeConfig) SnakeScaling {
	return SnakeScaling{
		tick:           cfg.Tick,
		applesPerLevel: max(1, cfg.Scoring.ApplesPerLevel),
	}
}

// Interval returns max(floor, base - (level-1)*step).
func (s SnakeScaling) Interval(level int) time.Duration {
	d := s.tick.Base - time.Duration(max(level, 1)-1)*s.tick.Step
	return max(d, s.tick.Floor)
}

// LevelForApples returns 1 + one level per applesPerLevel apples eaten.
func (s SnakeScaling) LevelForApples(apples int) int {
	if apples < 0 {
		return 1
	}
	return 1 + apples/s.applesPerLevel
}
