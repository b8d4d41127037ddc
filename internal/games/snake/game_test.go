package snake

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/prompt-arcade/internal/config"
	"github.com/vovakirdan/prompt-arcade/internal/core"
)

func newStartedGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(config.DefaultSnakeConfig(), seed, nil)
	g.Start()
	return g
}

// setSnake replaces the body and keeps the occupancy set in sync.
func setSnake(g *Game, pts ...Point) {
	g.snake = append([]Point(nil), pts...)
	g.occupied = mapset.New[Point]()
	for _, p := range pts {
		g.occupied.Put(p)
	}
}

func samePoints(a, b []Point) bool {
	return reflect.DeepEqual(a, b)
}

func TestStartLayout(t *testing.T) {
	g := newStartedGame(t, 1)

	expected := []Point{{10, 10}, {9, 10}, {8, 10}}
	if !samePoints(g.snake, expected) {
		t.Errorf("initial snake = %v, expected %v", g.snake, expected)
	}
	if g.direction != DirRight {
		t.Errorf("initial direction = %v, expected right", g.direction)
	}
	if !g.hasFood || g.occupied.Has(g.food) {
		t.Errorf("initial food %v invalid (hasFood=%v)", g.food, g.hasFood)
	}
}

func TestTickMovesWithoutGrowth(t *testing.T) {
	g := newStartedGame(t, 1)
	setSnake(g, Point{10, 10}, Point{9, 10}, Point{8, 10})
	g.food = Point{0, 0}

	g.Tick()

	expected := []Point{{11, 10}, {10, 10}, {9, 10}}
	if !samePoints(g.snake, expected) {
		t.Errorf("snake = %v, expected %v", g.snake, expected)
	}
	if g.session.Score() != 0 {
		t.Errorf("score = %d, expected unchanged 0", g.session.Score())
	}
	if g.occupied.Size() != len(g.snake) || g.occupied.Has(Point{8, 10}) {
		t.Error("occupancy set out of sync after move")
	}
}

func TestTickEatsAndGrows(t *testing.T) {
	g := newStartedGame(t, 1)
	setSnake(g, Point{10, 10}, Point{9, 10}, Point{8, 10})
	g.food = Point{11, 10}

	var scores []int
	g.Subscribe(core.ListenerFuncs{Score: func(s int) { scores = append(scores, s) }})

	g.Tick()

	expected := []Point{{11, 10}, {10, 10}, {9, 10}, {8, 10}}
	if !samePoints(g.snake, expected) {
		t.Errorf("snake = %v, expected %v", g.snake, expected)
	}
	if g.session.Score() != 10 {
		t.Errorf("score = %d, expected 10 (10 x level 1)", g.session.Score())
	}
	if g.apples != 1 {
		t.Errorf("apples = %d, expected 1", g.apples)
	}
	if !g.hasFood || g.occupied.Has(g.food) {
		t.Errorf("food respawned on the snake at %v", g.food)
	}
	if len(scores) != 1 || scores[0] != 10 {
		t.Errorf("OnScore calls = %v, expected [10]", scores)
	}
}

func TestScoreScalesWithLevel(t *testing.T) {
	g := newStartedGame(t, 1)
	g.session.RaiseLevel(3)
	setSnake(g, Point{10, 10}, Point{9, 10}, Point{8, 10})
	g.food = Point{11, 10}

	g.Tick()

	if g.session.Score() != 30 {
		t.Errorf("score at level 3 = %d, expected 30", g.session.Score())
	}
}

func TestWallCollisionEndsGame(t *testing.T) {
	g := newStartedGame(t, 1)
	setSnake(g, Point{19, 10}, Point{18, 10}, Point{17, 10})
	g.food = Point{0, 0}

	var over []core.GameStats
	g.Subscribe(core.ListenerFuncs{GameOver: func(s core.GameStats) { over = append(over, s) }})

	g.Tick()
	g.Tick() // no-op after game over

	if g.session.State() != core.StateGameOver {
		t.Fatalf("state = %v, expected gameover", g.session.State())
	}
	if len(over) != 1 {
		t.Fatalf("OnGameOver fired %d times, expected 1", len(over))
	}
	if over[0].GameID != "snake" || over[0].Level != 1 || over[0].Extra["length"] != 3 {
		t.Errorf("stats = %+v", over[0])
	}
}

func TestAllWallsCollide(t *testing.T) {
	tests := []struct {
		name string
		head Point
		dir  Direction
	}{
		{"left wall", Point{0, 5}, DirLeft},
		{"top wall", Point{5, 0}, DirUp},
		{"bottom wall", Point{5, 19}, DirDown},
		{"right wall", Point{19, 5}, DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newStartedGame(t, 1)
			// Body trails away from the wall
			neck := tc.head.Add(tc.dir.Opposite().Delta())
			setSnake(g, tc.head, neck)
			g.food = Point{10, 10}
			g.direction, g.nextDir = tc.dir, tc.dir

			g.Tick()

			if g.session.State() != core.StateGameOver {
				t.Errorf("state = %v, expected gameover", g.session.State())
			}
		})
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	g := newStartedGame(t, 1)
	// Hook shape: moving up from (5,6) lands on (5,5), a body cell that is not the tail
	setSnake(g, Point{5, 6}, Point{6, 6}, Point{6, 5}, Point{5, 5}, Point{4, 5})
	g.food = Point{0, 0}
	g.direction, g.nextDir = DirLeft, DirUp

	g.Tick()

	if g.session.State() != core.StateGameOver {
		t.Errorf("state = %v, expected gameover", g.session.State())
	}
}

func TestMovingIntoVacatingTailIsAllowed(t *testing.T) {
	g := newStartedGame(t, 1)
	// 2x2 loop: the head chases the tail
	setSnake(g, Point{5, 5}, Point{6, 5}, Point{6, 6}, Point{5, 6})
	g.food = Point{0, 0}
	g.direction, g.nextDir = DirLeft, DirDown

	g.Tick()

	if g.session.State() != core.StatePlaying {
		t.Fatalf("chasing the tail should be legal, state = %v", g.session.State())
	}
	expected := []Point{{5, 6}, {5, 5}, {6, 5}, {6, 6}}
	if !samePoints(g.snake, expected) {
		t.Errorf("snake = %v, expected %v", g.snake, expected)
	}
	if g.occupied.Size() != 4 {
		t.Errorf("occupied size = %d, expected 4", g.occupied.Size())
	}
}

func TestReversalRejected(t *testing.T) {
	g := newStartedGame(t, 1)
	g.food = Point{0, 0}

	g.SetDirection(DirLeft)
	g.Tick()

	if g.direction != DirRight {
		t.Errorf("direction = %v, expected right", g.direction)
	}
	if g.snake[0] != (Point{11, 10}) {
		t.Errorf("head = %v, expected (11,10)", g.snake[0])
	}
	if g.session.State() != core.StatePlaying {
		t.Error("rejected reversal should not end the game")
	}
}

func TestBufferedTurnCannotReverseThroughNeck(t *testing.T) {
	g := newStartedGame(t, 1)
	g.food = Point{0, 0}

	// Up is accepted; Left is still the opposite of the committed Right
	g.SetDirection(DirUp)
	g.SetDirection(DirLeft)
	g.Tick()

	if g.direction != DirUp {
		t.Errorf("direction = %v, expected up", g.direction)
	}
	if g.session.State() != core.StatePlaying {
		t.Error("turn should not end the game")
	}
}

func TestFoodNeverSpawnsOnSnake(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), 7, nil)
	board := rand.New(rand.NewSource(99))
	w, h := g.cfg.Board.Width, g.cfg.Board.Height

	for round := range 300 {
		g.occupied = mapset.New[Point]()
		density := float64(round%100) / 100
		for y := range h {
			for x := range w {
				if board.Float64() < density {
					g.occupied.Put(Point{X: x, Y: y})
				}
			}
		}

		g.spawnFood()

		if g.occupied.Size() == w*h {
			if g.hasFood {
				t.Fatalf("round %d: full board should have no food", round)
			}
			continue
		}
		if !g.hasFood {
			t.Fatalf("round %d: no food with %d free cells", round, w*h-g.occupied.Size())
		}
		if g.occupied.Has(g.food) {
			t.Fatalf("round %d: food spawned on occupied cell %v", round, g.food)
		}
		if !g.inBounds(g.food) {
			t.Fatalf("round %d: food out of bounds at %v", round, g.food)
		}
	}
}

func TestFoodOnNearlyFullBoard(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), 3, nil)
	g.occupied = mapset.New[Point]()
	free := Point{X: 13, Y: 17}
	for y := range g.cfg.Board.Height {
		for x := range g.cfg.Board.Width {
			if p := (Point{X: x, Y: y}); p != free {
				g.occupied.Put(p)
			}
		}
	}

	g.spawnFood()

	if !g.hasFood || g.food != free {
		t.Errorf("food = %v (hasFood=%v), expected the only free cell %v", g.food, g.hasFood, free)
	}
}

func TestNoDuplicateCellsWhilePlaying(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := newStartedGame(t, seed)
		turns := rand.New(rand.NewSource(seed))

		for range 500 {
			if g.session.State() != core.StatePlaying {
				break
			}
			g.SetDirection(Direction(turns.Intn(4)))
			g.Tick()

			if g.session.State() != core.StatePlaying {
				break
			}
			seen := make(map[Point]bool, len(g.snake))
			for _, p := range g.snake {
				if seen[p] {
					t.Fatalf("seed %d: duplicate cell %v in %v", seed, p, g.snake)
				}
				seen[p] = true
			}
			if g.occupied.Size() != len(g.snake) {
				t.Fatalf("seed %d: occupied %d != length %d", seed, g.occupied.Size(), len(g.snake))
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newStartedGame(t, 12345)
		for i := range 200 {
			switch i % 17 {
			case 3:
				g.SetDirection(DirDown)
			case 8:
				g.SetDirection(DirLeft)
			case 12:
				g.SetDirection(DirUp)
			case 15:
				g.SetDirection(DirRight)
			}
			g.Tick()
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", a, b)
	}
}

func TestLevelUpRearmsTimer(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Scoring.ApplesPerLevel = 1
	g := New(cfg, 1, nil)

	var levels []int
	g.Subscribe(core.ListenerFuncs{LevelUp: func(l int) { levels = append(levels, l) }})

	loop := core.NewLoop()
	g.Attach(loop, nil)
	g.Start()
	setSnake(g, Point{10, 10}, Point{9, 10}, Point{8, 10})
	g.food = Point{11, 10}

	loop.Advance(149 * time.Millisecond)
	if g.ticks != 0 {
		t.Fatalf("ticked before the first interval: %d", g.ticks)
	}
	loop.Advance(150 * time.Millisecond) // eats, reaches level 2

	if len(levels) != 1 || levels[0] != 2 {
		t.Fatalf("level-ups = %v, expected [2]", levels)
	}
	if g.interval != 140*time.Millisecond {
		t.Fatalf("interval = %v, expected 140ms", g.interval)
	}

	g.food = Point{0, 0}
	loop.Advance(289 * time.Millisecond)
	if g.ticks != 1 {
		t.Errorf("re-armed timer fired early, ticks = %d", g.ticks)
	}
	loop.Advance(290 * time.Millisecond)
	if g.ticks != 2 {
		t.Errorf("re-armed timer should fire 140ms after the level-up, ticks = %d", g.ticks)
	}
	if loop.Pending() != 2 {
		t.Errorf("Pending() = %d, expected the frame subscription and one logic timer", loop.Pending())
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), 5, nil)
	loop := core.NewLoop()
	var frames int
	g.Attach(loop, core.SurfaceFunc[Snapshot](func(Snapshot) { frames++ }))
	g.Start()

	ts := time.Duration(0)
	step := func(n int) {
		for range n {
			ts += time.Second / 60
			loop.Advance(ts)
		}
	}

	step(12) // at least one tick
	g.Pause(true)
	before := g.Snapshot()
	framesBefore := frames

	step(10)
	after := g.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state changed while paused:\n%+v\n%+v", before, after)
	}
	if frames != framesBefore+10 {
		t.Errorf("surface should keep receiving frames while paused, got %d", frames-framesBefore)
	}
	if after.State != core.StatePaused {
		t.Errorf("state = %v, expected paused", after.State)
	}

	g.Pause(false)
	step(12)
	if g.Snapshot().Ticks <= before.Ticks {
		t.Error("simulation should resume after unpausing")
	}
}

func TestDisposeStopsCallbacks(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), 5, nil)
	loop := core.NewLoop()
	frames := 0
	g.Attach(loop, core.SurfaceFunc[Snapshot](func(Snapshot) { frames++ }))
	g.Start()

	loop.Advance(time.Second)
	g.Dispose()
	ticks, seenFrames := g.ticks, frames

	loop.Advance(2 * time.Second)
	loop.Advance(3 * time.Second)

	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d after Dispose, expected 0", loop.Pending())
	}
	if g.ticks != ticks || frames != seenFrames {
		t.Error("callbacks ran after Dispose")
	}
}

func TestHandleActions(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), 1, nil)

	g.Handle(core.ActionLeft)
	if g.Status().State != core.StateIdle {
		t.Fatal("direction input should not start the game")
	}

	g.Handle(core.ActionJump)
	if g.Status().State != core.StatePlaying {
		t.Fatalf("jump should start an idle game, state = %v", g.Status().State)
	}

	g.Handle(core.ActionPause)
	if g.Status().State != core.StatePaused {
		t.Fatalf("pause action should pause, state = %v", g.Status().State)
	}
	g.Handle(core.ActionUp)
	if g.nextDir != DirRight {
		t.Error("direction input while paused should be ignored")
	}
	g.Handle(core.ActionPause)
	if g.Status().State != core.StatePlaying {
		t.Fatalf("second pause action should resume, state = %v", g.Status().State)
	}

	setSnake(g, Point{19, 10}, Point{18, 10})
	g.Tick()
	if g.Status().State != core.StateGameOver {
		t.Fatal("expected game over")
	}

	g.Handle(core.ActionConfirm)
	st := g.Status()
	if st.State != core.StatePlaying || st.Score != 0 || st.Level != 1 {
		t.Errorf("confirm after game over should restart, got %+v", st)
	}
}

func TestPainterDrawsBoard(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), 1, nil)
	screen := core.NewScreen(80, 24)
	loop := core.NewLoop()
	g.Mount(loop, screen)
	g.Start()

	loop.Advance(time.Second / 60)

	head := g.snake[0]
	ox := (80 - (20*2 + 2)) / 2
	if r := screen.Get(ox+1+head.X*2, hudHeight+1+head.Y); r != '█' {
		t.Errorf("head cell = %q, expected '█'", r)
	}

	small := core.NewScreen(20, 10)
	NewPainter(small).Present(g.Snapshot())
	found := false
	for y := range small.Height() {
		if strings.Contains(small.Row(y), "too small") {
			found = true
		}
	}
	if !found {
		t.Error("small screen should show a resize hint")
	}
}
