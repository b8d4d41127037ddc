// Package runner implements Prompt Runner, an endless runner where the
// player jumps over obstacles scrolling in from the right. The simulation
// runs once per display frame on a refresh-rate independent delta.
package runner

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/prompt-arcade/internal/config"
	"github.com/vovakirdan/prompt-arcade/internal/core"
	"github.com/vovakirdan/prompt-arcade/internal/registry"
)

// Game implements Prompt Runner.
type Game struct {
	cfg     config.RunnerConfig
	scaling config.RunnerScaling
	session *core.Session
	rng     *rand.Rand
	logger  *log.Logger
	clock   core.Clock

	actor     Actor
	obstacles *ObstacleManager

	points      float64 // Fractional distance points not yet added to the score
	sinceReport float64 // Logical frames since the last OnScore
	distance    float64
	cleared     int
	jumps       int

	// Host wiring
	surface     core.Surface[Snapshot]
	cancelFrame core.CancelFunc
}

// New creates an idle runner. The RNG is seeded once, so identical seeds,
// inputs and frame timestamps replay identically.
func New(cfg config.RunnerConfig, seed int64, logger *log.Logger) *Game {
	if logger == nil {
		logger = core.RuntimeConfig{}.Log()
	}
	scaling := config.NewRunnerScaling(cfg)
	rng := rand.New(rand.NewSource(seed))
	return &Game{
		cfg:       cfg,
		scaling:   scaling,
		session:   core.NewSession(config.RunnerID, logger),
		rng:       rng,
		logger:    logger,
		clock:     core.NewClock(float64(cfg.Physics.ReferenceHz), cfg.Physics.MaxFrameScale),
		actor:     NewActor(cfg),
		obstacles: NewObstacleManager(rng, cfg, scaling),
	}
}

func init() {
	registry.Register(config.RunnerID, "Prompt Runner", func(rc core.RuntimeConfig) (registry.Game, error) {
		cfg, err := config.LoadRunner(rc.ConfigPath)
		if err != nil {
			return nil, err
		}
		preset, err := config.ParsePreset(rc.Difficulty)
		if err != nil {
			return nil, err
		}
		config.ApplyRunnerPreset(&cfg, preset)
		return New(cfg, rc.Seed, rc.Log()), nil
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return config.RunnerID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Prompt Runner" }

// Attach subscribes Frame to the scheduler's display refresh. A nil
// surface simulates without painting.
func (g *Game) Attach(sched core.Scheduler, surface core.Surface[Snapshot]) {
	g.Dispose()
	g.surface = surface
	if sched == nil {
		return
	}
	g.clock.Reset()
	g.cancelFrame = sched.OnFrame(g.Frame)
}

// Mount implements registry.Game by painting onto dst.
func (g *Game) Mount(sched core.Scheduler, dst *core.Screen) {
	if dst == nil {
		g.Attach(sched, nil)
		return
	}
	g.Attach(sched, NewPainter(dst))
}

// Dispose cancels the frame subscription.
func (g *Game) Dispose() {
	if g.cancelFrame != nil {
		g.cancelFrame()
		g.cancelFrame = nil
	}
}

// Subscribe registers a session listener.
func (g *Game) Subscribe(l core.Listener) func() {
	return g.session.Subscribe(l)
}

// Status returns the session view.
func (g *Game) Status() core.Status {
	return g.session.Status()
}

// Start resets the world and begins a new session.
func (g *Game) Start() {
	g.actor = NewActor(g.cfg)
	g.obstacles.Reset()
	g.points = 0
	g.sinceReport = 0
	g.distance = 0
	g.cleared = 0
	g.jumps = 0
	g.clock.Reset()
	g.session.Start()
}

// Pause gates Step. Frames keep arriving so the overlay is painted.
func (g *Game) Pause(paused bool) {
	g.session.SetPaused(paused)
}

// Jump is the runner's one input. From idle or game over it starts a new
// session; while playing it makes a grounded actor jump. Paused, it does
// nothing.
func (g *Game) Jump() {
	switch g.session.State() {
	case core.StateIdle, core.StateGameOver:
		g.Start()
	case core.StatePlaying:
		if g.actor.Jump() {
			g.jumps++
		}
	}
}

// Handle applies a platform action.
func (g *Game) Handle(a core.Action) {
	state := g.session.State()
	switch a {
	case core.ActionJump, core.ActionUp:
		g.Jump()
	case core.ActionConfirm:
		if state == core.StateIdle || state == core.StateGameOver {
			g.Start()
		}
	case core.ActionPause:
		g.Pause(state == core.StatePlaying)
	case core.ActionRestart:
		g.Start()
	}
}

// Frame is the display-refresh callback: it normalizes the timestamp,
// steps the simulation and hands a snapshot to the surface. The clock is
// fed while paused too, so resuming does not produce a catch-up jump.
func (g *Game) Frame(ts time.Duration) {
	dt := g.clock.Delta(ts)
	g.Step(dt)
	if g.surface != nil {
		g.surface.Present(g.Snapshot())
	}
}

// Step advances the simulation by dt logical frames.
func (g *Game) Step(dt float64) {
	if !g.session.Playing() || dt <= 0 {
		return
	}

	level := g.session.Level()
	speed := g.scaling.Speed(level)

	g.actor.Integrate(dt)
	g.obstacles.Update(speed, dt, level)
	g.distance += speed * dt

	if g.obstacles.CheckCollision(g.actor.Hitbox(g.cfg.Actor.HitboxInset)) {
		g.end()
		return
	}

	// Cleared once its trailing edge is behind the actor's leading edge
	if n := g.obstacles.MarkPassed(g.actor.X + g.actor.Width); n > 0 {
		g.cleared += n
		g.session.AddScore(n * g.cfg.Scoring.ClearBonus)
	}

	g.points += g.cfg.Scoring.PointsPerFrame * dt
	if whole := math.Floor(g.points); whole >= 1 {
		g.points -= whole
		g.session.AddScore(int(whole))
	}

	if g.session.RaiseLevel(g.scaling.LevelForScore(g.session.Score())) {
		g.logger.Debug("runner speed up", "level", g.session.Level(), "speed", g.scaling.Speed(g.session.Level()))
	}

	g.sinceReport += dt
	if g.sinceReport >= g.cfg.Scoring.ReportEvery {
		g.sinceReport = 0
		g.session.ReportScore()
	}
}

func (g *Game) end() {
	g.session.End(map[string]int{
		"obstacles_cleared": g.cleared,
		"jumps":             g.jumps,
		"distance":          int(g.distance),
	})
}
