package snake

import (
	"time"

	"github.com/vovakirdan/prompt-arcade/internal/core"
)

// Snapshot is a read-only copy of the game state handed to the render
// surface and used by determinism tests.
type Snapshot struct {
	core.Status

	Width    int
	Height   int
	Snake    []Point // Head at index 0
	Dir      Direction
	Food     Point
	HasFood  bool
	Apples   int
	Ticks    uint64
	Interval time.Duration
}

// Snapshot returns the current game snapshot. The snake slice is a copy.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Status:   g.session.Status(),
		Width:    g.cfg.Board.Width,
		Height:   g.cfg.Board.Height,
		Snake:    append([]Point(nil), g.snake...),
		Dir:      g.direction,
		Food:     g.food,
		HasFood:  g.hasFood,
		Apples:   g.apples,
		Ticks:    g.ticks,
		Interval: g.interval,
	}
}

// Head returns the head cell.
func (s Snapshot) Head() Point {
	if len(s.Snake) == 0 {
		return Point{X: -1, Y: -1}
	}
	return s.Snake[0]
}
