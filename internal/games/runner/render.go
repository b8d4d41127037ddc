package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/prompt-arcade/internal/core"
)

// Visual characters for rendering
const (
	ActorChar    = '█'
	ObstacleChar = '▓'
	GroundChar   = '═'
)

// Painter scales the world onto a screen buffer. Row 0 holds the HUD.
type Painter struct {
	dst *core.Screen
}

// NewPainter creates a painter for dst.
func NewPainter(dst *core.Screen) *Painter {
	return &Painter{dst: dst}
}

// cellRect converts a world box to screen cells, never collapsing below 1x1.
func (p *Painter) cellRect(b core.Box, sx, sy float64) core.Rect {
	x0 := int(math.Floor(b.X * sx))
	y0 := 1 + int(math.Floor(b.Y*sy))
	x1 := int(math.Ceil(b.Right() * sx))
	y1 := 1 + int(math.Ceil(b.Bottom()*sy))
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// Present implements core.Surface.
func (p *Painter) Present(s Snapshot) {
	dst := p.dst
	if dst == nil || dst.Width() == 0 || dst.Height() < 2 {
		return
	}
	dst.Clear()

	sx := float64(dst.Width()) / s.WorldWidth
	sy := float64(dst.Height()-1) / s.WorldHeight

	groundRow := 1 + int(math.Ceil(s.GroundLine*sy))
	dst.DrawRect(core.NewRect(0, groundRow, dst.Width(), 1), GroundChar, core.ColorGray)

	for _, o := range s.Obstacles {
		r := p.cellRect(o.Box(), sx, sy)
		r.Y = groundRow - r.H
		dst.DrawRect(r, ObstacleChar, o.Color)
		if n := len([]rune(o.Label)); n > 0 && r.X >= 0 {
			dst.DrawTextColored(r.X+(r.W-n)/2, r.Y-1, o.Label, o.Color)
		}
	}

	actor := p.cellRect(s.Actor.Bounds(), sx, sy)
	if actor.Bottom() > groundRow {
		actor.Y = groundRow - actor.H
	}
	dst.DrawRect(actor, ActorChar, core.ColorCyan)

	hud := fmt.Sprintf(" Score: %d  Level: %d  Speed: %.1f ", s.Score, s.Level, s.Speed)
	dst.DrawTextColored(1, 0, hud, core.ColorWhite)

	switch s.State {
	case core.StateIdle:
		dst.DrawMessage("PROMPT RUNNER", "Press Space to start")
	case core.StatePaused:
		dst.DrawMessage("PAUSED", "Press P to resume")
	case core.StateGameOver:
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score))
	}
}
