package runner

import "github.com/vovakirdan/prompt-arcade/internal/core"

// Snapshot is a read-only copy of the runner state for rendering and tests.
type Snapshot struct {
	core.Status

	WorldWidth  float64
	WorldHeight float64
	GroundLine  float64

	Actor     Actor
	Obstacles []Obstacle
	Speed     float64
	Distance  float64
	Cleared   int
	Jumps     int
}

// Snapshot returns the current game snapshot. Obstacles are copied.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Status:      g.session.Status(),
		WorldWidth:  g.cfg.World.Width,
		WorldHeight: g.cfg.World.Height,
		GroundLine:  g.cfg.World.GroundLine,
		Actor:       g.actor,
		Obstacles:   append([]Obstacle(nil), g.obstacles.Obstacles()...),
		Speed:       g.scaling.Speed(g.session.Level()),
		Distance:    g.distance,
		Cleared:     g.cleared,
		Jumps:       g.jumps,
	}
}
