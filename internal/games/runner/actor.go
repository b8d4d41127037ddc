package runner

import (
	"github.com/vovakirdan/prompt-arcade/internal/config"
	"github.com/vovakirdan/prompt-arcade/internal/core"
)

// Actor is the player. X is fixed; Y is the top edge and grows downward.
type Actor struct {
	X, Y      float64
	VelocityY float64
	Width     float64
	Height    float64
	Grounded  bool

	groundY float64 // Resting Y: ground line minus height
	physics config.RunnerPhysics
}

// NewActor places an actor on the ground.
func NewActor(cfg config.RunnerConfig) Actor {
	a := Actor{
		X:       cfg.Actor.X,
		Width:   cfg.Actor.Width,
		Height:  cfg.Actor.Height,
		groundY: cfg.World.GroundLine - cfg.Actor.Height,
		physics: cfg.Physics,
	}
	a.Land()
	return a
}

// GroundY returns the resting Y. Y never exceeds it.
func (a *Actor) GroundY() float64 { return a.groundY }

// Land puts the actor on the ground at rest.
func (a *Actor) Land() {
	a.Y = a.groundY
	a.VelocityY = 0
	a.Grounded = true
}

// Jump applies the jump impulse. It only works from the ground.
func (a *Actor) Jump() bool {
	if !a.Grounded {
		return false
	}
	a.VelocityY = a.physics.JumpImpulse
	a.Grounded = false
	return true
}

// Integrate advances the actor by dt logical frames using semi-implicit
// Euler: velocity first, then position from the new velocity.
func (a *Actor) Integrate(dt float64) {
	if dt <= 0 {
		return
	}
	a.VelocityY += a.physics.Gravity * dt
	if limit := a.physics.MaxFallSpeed; limit > 0 && a.VelocityY > limit {
		a.VelocityY = limit
	}
	a.Y += a.VelocityY * dt

	if a.Y >= a.groundY {
		a.Land()
	}
}

// Bounds returns the visual bounding box.
func (a *Actor) Bounds() core.Box {
	return core.Box{X: a.X, Y: a.Y, W: a.Width, H: a.Height}
}

// Hitbox returns the collision box, shrunk by inset on every side.
func (a *Actor) Hitbox(inset float64) core.Box {
	return a.Bounds().Inset(inset)
}
