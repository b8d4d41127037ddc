// Package snake implements the grid Snake game. The simulation advances on
// its own logic timer whose interval shrinks with level; rendering reads a
// snapshot once per display frame.
package snake

import (
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/prompt-arcade/internal/config"
	"github.com/vovakirdan/prompt-arcade/internal/core"
	"github.com/vovakirdan/prompt-arcade/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the unit step for the direction.
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{Y: -1}
	case DirDown:
		return Point{Y: 1}
	case DirLeft:
		return Point{X: -1}
	default:
		return Point{X: 1}
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Point represents a grid cell.
type Point struct {
	X, Y int
}

// Add returns p moved by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Game implements Snake.
type Game struct {
	cfg     config.SnakeConfig
	scaling config.SnakeScaling
	session *core.Session
	rng     *rand.Rand
	logger  *log.Logger

	// Snake state
	snake     []Point           // Head at index 0
	occupied  mapset.Set[Point] // Same cells as snake
	direction Direction         // Committed on the last tick
	nextDir   Direction         // Buffered direction for next tick
	food      Point
	hasFood   bool // False only when the board is full
	apples    int
	ticks     uint64
	interval  time.Duration

	// Host wiring
	sched       core.Scheduler
	surface     core.Surface[Snapshot]
	cancelFrame core.CancelFunc
	cancelTick  core.CancelFunc
}

// New creates an idle Snake game. The RNG is seeded once, so two games with
// the same seed and inputs play out identically.
func New(cfg config.SnakeConfig, seed int64, logger *log.Logger) *Game {
	if logger == nil {
		logger = core.RuntimeConfig{}.Log()
	}
	g := &Game{
		cfg:      cfg,
		scaling:  config.NewSnakeScaling(cfg),
		session:  core.NewSession(config.SnakeID, logger),
		rng:      rand.New(rand.NewSource(seed)),
		logger:   logger,
		occupied: mapset.New[Point](),
	}
	g.interval = g.scaling.Interval(1)
	g.placeSnake()
	return g
}

func init() {
	registry.Register(config.SnakeID, "Snake", func(rc core.RuntimeConfig) (registry.Game, error) {
		cfg, err := config.LoadSnake(rc.ConfigPath)
		if err != nil {
			return nil, err
		}
		preset, err := config.ParsePreset(rc.Difficulty)
		if err != nil {
			return nil, err
		}
		config.ApplySnakePreset(&cfg, preset)
		return New(cfg, rc.Seed, rc.Log()), nil
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return config.SnakeID }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// Attach subscribes the game to a scheduler. The surface receives a snapshot
// every display frame; a nil surface skips painting.
func (g *Game) Attach(sched core.Scheduler, surface core.Surface[Snapshot]) {
	g.Dispose()
	g.sched = sched
	g.surface = surface
	if sched == nil {
		return
	}
	g.cancelFrame = sched.OnFrame(func(time.Duration) {
		if g.surface != nil {
			g.surface.Present(g.Snapshot())
		}
	})
	if st := g.session.State(); st == core.StatePlaying || st == core.StatePaused {
		g.arm()
	}
}

// Mount implements registry.Game by painting onto dst.
func (g *Game) Mount(sched core.Scheduler, dst *core.Screen) {
	if dst == nil {
		g.Attach(sched, nil)
		return
	}
	g.Attach(sched, NewPainter(dst))
}

// Dispose cancels the frame subscription and the logic timer.
func (g *Game) Dispose() {
	if g.cancelFrame != nil {
		g.cancelFrame()
		g.cancelFrame = nil
	}
	g.disarm()
	g.sched = nil
}

// Subscribe registers a session listener.
func (g *Game) Subscribe(l core.Listener) func() {
	return g.session.Subscribe(l)
}

// Status returns the session view.
func (g *Game) Status() core.Status {
	return g.session.Status()
}

// Start re-initializes the board and begins a new session.
func (g *Game) Start() {
	g.placeSnake()
	g.apples = 0
	g.ticks = 0
	g.spawnFood()
	g.interval = g.scaling.Interval(1)
	g.session.Start()
	g.arm()
}

// Pause gates the logic tick. The timer keeps running so the paused
// overlay is still painted.
func (g *Game) Pause(paused bool) {
	g.session.SetPaused(paused)
}

// SetDirection buffers a turn for the next tick. Reversals into the neck
// and input outside a playing session are ignored.
func (g *Game) SetDirection(d Direction) {
	if !g.session.Playing() {
		return
	}
	if d == g.direction.Opposite() {
		return
	}
	g.nextDir = d
}

// Handle applies a platform action.
func (g *Game) Handle(a core.Action) {
	state := g.session.State()
	switch a {
	case core.ActionUp:
		g.SetDirection(DirUp)
	case core.ActionDown:
		g.SetDirection(DirDown)
	case core.ActionLeft:
		g.SetDirection(DirLeft)
	case core.ActionRight:
		g.SetDirection(DirRight)
	case core.ActionJump, core.ActionConfirm:
		if state == core.StateIdle || state == core.StateGameOver {
			g.Start()
		}
	case core.ActionPause:
		g.Pause(state == core.StatePlaying)
	case core.ActionRestart:
		g.Start()
	}
}

// Tick advances the simulation by one grid step.
func (g *Game) Tick() {
	if !g.session.Playing() {
		return
	}
	g.ticks++

	g.direction = g.nextDir
	head := g.snake[0].Add(g.direction.Delta())
	eating := g.hasFood && head == g.food

	if !g.inBounds(head) || g.hitsBody(head, eating) {
		g.end()
		return
	}

	if !eating {
		tail := g.snake[len(g.snake)-1]
		g.snake = g.snake[:len(g.snake)-1]
		g.occupied.Remove(tail)
	}
	g.snake = slices.Insert(g.snake, 0, head)
	g.occupied.Put(head)

	if eating {
		g.eat()
	}
}

// eat scores an apple, respawns food and re-arms the timer on level-up.
func (g *Game) eat() {
	g.session.AddScore(g.cfg.Scoring.PointsPerApple * g.session.Level())
	g.apples++
	g.session.ReportScore()
	g.spawnFood()

	if g.session.RaiseLevel(g.scaling.LevelForApples(g.apples)) {
		g.interval = g.scaling.Interval(g.session.Level())
		g.logger.Debug("snake speed up", "level", g.session.Level(), "interval", g.interval)
		g.arm()
	}
}

func (g *Game) end() {
	g.disarm()
	g.session.End(map[string]int{
		"apples": g.apples,
		"length": len(g.snake),
		"ticks":  int(g.ticks),
	})
}

// inBounds reports whether p lies on the board.
func (g *Game) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.cfg.Board.Width && p.Y >= 0 && p.Y < g.cfg.Board.Height
}

// hitsBody reports whether head lands on the body. The tail is excluded
// when not eating since it moves out of the way this tick.
func (g *Game) hitsBody(head Point, eating bool) bool {
	if !g.occupied.Has(head) {
		return false
	}
	return eating || head != g.snake[len(g.snake)-1]
}

// placeSnake lays the initial snake horizontally through the board center,
// heading right.
func (g *Game) placeSnake() {
	cx, cy := g.cfg.Board.Width/2, g.cfg.Board.Height/2
	length := max(1, g.cfg.Board.InitialLength)

	g.snake = g.snake[:0]
	g.occupied = mapset.New[Point]()
	for i := range length {
		p := Point{X: cx - i, Y: cy}
		g.snake = append(g.snake, p)
		g.occupied.Put(p)
	}
	g.direction = DirRight
	g.nextDir = DirRight
}

// arm (re)schedules the logic tick at the current interval.
func (g *Game) arm() {
	g.disarm()
	if g.sched == nil {
		return
	}
	g.cancelTick = g.sched.Every(g.interval, g.Tick)
}

func (g *Game) disarm() {
	if g.cancelTick != nil {
		g.cancelTick()
		g.cancelTick = nil
	}
}
