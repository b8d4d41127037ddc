package runner

import (
	"math/rand"

	"github.com/vovakirdan/prompt-arcade/internal/config"
	"github.com/vovakirdan/prompt-arcade/internal/core"
)

// Obstacle is a ground hazard scrolling toward the actor.
type Obstacle struct {
	X      float64 // Left edge
	Y      float64 // Top edge; obstacles sit on the ground line
	Width  float64
	Height float64
	Label  string
	Color  core.Color
	Passed bool // Set once the trailing edge is behind the actor
}

// Box returns the collision box for this obstacle.
func (o Obstacle) Box() core.Box {
	return core.Box{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// ObstacleManager handles spawning, movement, and removal of obstacles.
type ObstacleManager struct {
	obstacles []Obstacle // Insertion order, oldest first
	rng       *rand.Rand
	world     config.RunnerWorld
	cfg       config.RunnerObstacles
	scaling   config.RunnerScaling
	countdown float64 // Distance until the next spawn
}

// NewObstacleManager creates an obstacle manager drawing from rng.
func NewObstacleManager(rng *rand.Rand, cfg config.RunnerConfig, scaling config.RunnerScaling) *ObstacleManager {
	om := &ObstacleManager{
		obstacles: make([]Obstacle, 0, 8),
		rng:       rng,
		world:     cfg.World,
		cfg:       cfg.Obstacles,
		scaling:   scaling,
	}
	om.Reset()
	return om
}

// Reset clears all obstacles and arms the first spawn.
func (om *ObstacleManager) Reset() {
	om.obstacles = om.obstacles[:0]
	om.countdown = om.cfg.FirstGap
}

// Update scrolls obstacles left by speed*dt, drops the ones far enough off
// screen and spawns a new one when the countdown runs out.
func (om *ObstacleManager) Update(speed, dt float64, level int) {
	dx := speed * dt
	if dx <= 0 {
		return
	}

	// Move obstacles left
	for i := range om.obstacles {
		om.obstacles[i].X -= dx
	}

	// Remove obstacles that have moved past the despawn margin
	live := om.obstacles[:0]
	for _, o := range om.obstacles {
		if o.X+o.Width >= -om.cfg.DespawnMargin {
			live = append(live, o)
		}
	}
	om.obstacles = live

	om.countdown -= dx
	if om.countdown <= 0 {
		om.spawn()
		om.countdown = om.NextGap(level)
	}
}

// NextGap draws the distance to the following spawn for level.
func (om *ObstacleManager) NextGap(level int) float64 {
	lo, hi := om.scaling.GapRange()
	drawn := lo
	if hi > lo {
		drawn = lo + om.rng.Float64()*(hi-lo)
	}
	return om.scaling.SpawnGap(level, drawn)
}

// spawn appends a random catalog obstacle just past the right edge.
func (om *ObstacleManager) spawn() {
	t := om.cfg.Catalog[om.rng.Intn(len(om.cfg.Catalog))]
	om.obstacles = append(om.obstacles, Obstacle{
		X:      om.world.Width + om.cfg.SpawnOffset,
		Y:      om.world.GroundLine - t.Height,
		Width:  t.Width,
		Height: t.Height,
		Label:  t.Label,
		Color:  core.ParseColor(t.Color),
	})
}

// MarkPassed flags obstacles whose trailing edge is left of x and returns
// how many were newly passed.
func (om *ObstacleManager) MarkPassed(x float64) int {
	n := 0
	for i := range om.obstacles {
		o := &om.obstacles[i]
		if !o.Passed && o.X+o.Width < x {
			o.Passed = true
			n++
		}
	}
	return n
}

// CheckCollision tests if the hitbox overlaps any live obstacle.
func (om *ObstacleManager) CheckCollision(hitbox core.Box) bool {
	for _, o := range om.obstacles {
		if hitbox.Intersects(o.Box()) {
			return true
		}
	}
	return false
}

// Countdown returns the distance left until the next spawn.
func (om *ObstacleManager) Countdown() float64 {
	return om.countdown
}

// Obstacles returns the live obstacles. Callers must not modify the slice.
func (om *ObstacleManager) Obstacles() []Obstacle {
	return om.obstacles
}
