package snake

import (
	"fmt"

	"github.com/vovakirdan/prompt-arcade/internal/core"
)

const hudHeight = 1

// Painter draws snapshots onto a screen buffer. Terminal cells are roughly
// twice as tall as wide, so each board cell takes two columns when it fits.
type Painter struct {
	dst *core.Screen
}

// NewPainter creates a painter for dst.
func NewPainter(dst *core.Screen) *Painter {
	return &Painter{dst: dst}
}

// Present implements core.Surface.
func (p *Painter) Present(s Snapshot) {
	dst := p.dst
	if dst == nil {
		return
	}
	dst.Clear()

	dst.DrawTextColored(1, 0, fmt.Sprintf("Snake  Score: %d  Level: %d  Apples: %d", s.Score, s.Level, s.Apples), core.ColorWhite)

	cellW := 2
	if s.Width*2+2 > dst.Width() {
		cellW = 1
	}
	boardW, boardH := s.Width*cellW+2, s.Height+2
	if boardW > dst.Width() || boardH+hudHeight > dst.Height() {
		dst.DrawMessage("Window too small", fmt.Sprintf("Need %dx%d", boardW, boardH+hudHeight))
		return
	}

	ox := (dst.Width() - boardW) / 2
	oy := hudHeight
	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH))

	cell := func(pt Point, r rune, c core.Color) {
		x := ox + 1 + pt.X*cellW
		for i := range cellW {
			dst.SetColored(x+i, oy+1+pt.Y, r, c)
		}
	}

	if s.HasFood {
		cell(s.Food, '●', core.ColorRed)
	}
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			cell(s.Snake[i], '█', core.ColorYellow)
		} else {
			cell(s.Snake[i], '▓', core.ColorGreen)
		}
	}

	switch s.State {
	case core.StateIdle:
		dst.DrawMessage("SNAKE", "Press Space to start")
	case core.StatePaused:
		dst.DrawMessage("PAUSED", "Press P to resume")
	case core.StateGameOver:
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score))
	}
}
