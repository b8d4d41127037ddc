package snake

// maxFoodAttempts bounds rejection sampling before falling back to a scan of
// the free cells, which only matters on a crowded board.
const maxFoodAttempts = 64

// spawnFood places food uniformly at random on a cell the snake does not
// occupy. When the board is full there is no food.
func (g *Game) spawnFood() {
	w, h := g.cfg.Board.Width, g.cfg.Board.Height
	free := w*h - g.occupied.Size()
	if free <= 0 {
		g.hasFood = false
		return
	}

	for range maxFoodAttempts {
		p := Point{X: g.rng.Intn(w), Y: g.rng.Intn(h)}
		if !g.occupied.Has(p) {
			g.food = p
			g.hasFood = true
			return
		}
	}

	cells := make([]Point, 0, free)
	for y := range h {
		for x := range w {
			if p := (Point{X: x, Y: y}); !g.occupied.Has(p) {
				cells = append(cells, p)
			}
		}
	}
	g.food = cells[g.rng.Intn(len(cells))]
	g.hasFood = true
}
