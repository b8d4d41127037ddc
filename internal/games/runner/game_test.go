package runner

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/prompt-arcade/internal/config"
	"github.com/vovakirdan/prompt-arcade/internal/core"
)

const frame = time.Second / 60

// quietConfig keeps obstacles away so tests control the world.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.FirstGap = math.MaxFloat64 / 2
	return cfg
}

func TestJumpScenario(t *testing.T) {
	cfg := quietConfig()
	g := New(cfg, 1, nil)
	g.Start()

	g.Jump()
	if g.actor.VelocityY != cfg.Physics.JumpImpulse || g.actor.Grounded {
		t.Fatalf("after jump: %+v", g.actor)
	}

	ground := g.actor.GroundY()
	minY := ground
	for range 120 {
		g.Step(1)
		minY = math.Min(minY, g.actor.Y)
		if g.actor.Y > ground {
			t.Fatalf("actor below ground: y=%v ground=%v", g.actor.Y, ground)
		}
	}

	if minY >= ground {
		t.Error("actor never left the ground")
	}
	if !g.actor.Grounded || g.actor.Y != ground {
		t.Errorf("actor should be back on the ground: %+v", g.actor)
	}
	if g.jumps != 1 {
		t.Errorf("jumps = %d, expected 1", g.jumps)
	}
}

func TestCollisionEndsGameOnce(t *testing.T) {
	g := New(quietConfig(), 1, nil)
	var over []core.GameStats
	g.Subscribe(core.ListenerFuncs{GameOver: func(s core.GameStats) { over = append(over, s) }})
	g.Start()

	// Obstacle right in front of the actor, too close to clear
	g.obstacles.obstacles = append(g.obstacles.obstacles, Obstacle{
		X: g.actor.X + g.actor.Width - 10, Y: 130, Width: 40, Height: 40, Label: "TEST",
	})
	g.Step(1)
	g.Step(1)

	if g.Status().State != core.StateGameOver {
		t.Fatalf("state = %v, expected gameover", g.Status().State)
	}
	if len(over) != 1 {
		t.Fatalf("OnGameOver fired %d times, expected 1", len(over))
	}
	if over[0].GameID != "runner" {
		t.Errorf("GameID = %q", over[0].GameID)
	}
	if _, ok := over[0].Extra["obstacles_cleared"]; !ok {
		t.Errorf("stats missing obstacles_cleared: %+v", over[0].Extra)
	}
}

func TestHitboxInsetForgivesGraze(t *testing.T) {
	cfg := quietConfig()
	cfg.Speed.Base = 0.0001
	g := New(cfg, 1, nil)
	g.Start()

	// Overlaps the visual box by 2 units but not the 4-unit inset hitbox
	g.obstacles.obstacles = append(g.obstacles.obstacles, Obstacle{
		X: g.actor.X + g.actor.Width - 2, Y: 140, Width: 30, Height: 30,
	})
	g.Step(1)

	if g.Status().State != core.StatePlaying {
		t.Errorf("graze should be forgiven, state = %v", g.Status().State)
	}
}

func TestClearingObstacleScoresBonus(t *testing.T) {
	cfg := quietConfig()
	cfg.Scoring.PointsPerFrame = 0
	g := New(cfg, 1, nil)
	g.Start()

	g.obstacles.obstacles = append(g.obstacles.obstacles, Obstacle{
		X: g.actor.X - 45, Y: 140, Width: 40, Height: 30,
	})
	g.Step(1)
	g.Step(1)

	if g.Status().Score != cfg.Scoring.ClearBonus {
		t.Errorf("score = %d, expected one clear bonus %d", g.Status().Score, cfg.Scoring.ClearBonus)
	}
	if g.cleared != 1 {
		t.Errorf("cleared = %d, expected 1", g.cleared)
	}
}

func TestLevelUpFiresOncePerThreshold(t *testing.T) {
	cfg := quietConfig()
	cfg.Scoring.PointsPerFrame = 100
	g := New(cfg, 1, nil)

	var levels []int
	g.Subscribe(core.ListenerFuncs{LevelUp: func(l int) { levels = append(levels, l) }})
	g.Start()

	prevScore := 0
	for range 100 {
		g.Step(1)
		if s := g.Status().Score; s < prevScore {
			t.Fatalf("score decreased: %d -> %d", prevScore, s)
		} else {
			prevScore = s
		}
	}

	// 100 frames x 100 points = 10000 points = level 11
	if g.Status().Level != 11 {
		t.Errorf("level = %d, expected 11", g.Status().Level)
	}
	for i, l := range levels {
		if l != i+2 {
			t.Fatalf("level-ups = %v, expected each of 2..11 exactly once", levels)
		}
	}
	if len(levels) != 10 {
		t.Errorf("got %d level-ups, expected 10", len(levels))
	}
}

func TestSpeedFollowsLevel(t *testing.T) {
	cfg := quietConfig()
	g := New(cfg, 1, nil)
	g.Start()
	g.session.RaiseLevel(3)

	before := g.distance
	g.Step(1)

	want := cfg.Speed.Base + 2*cfg.Speed.Increment
	if got := g.distance - before; math.Abs(got-want) > 1e-9 {
		t.Errorf("distance per frame at level 3 = %v, expected %v", got, want)
	}
}

func TestScoreReportedPeriodically(t *testing.T) {
	cfg := quietConfig()
	g := New(cfg, 1, nil)
	var reports []int
	g.Subscribe(core.ListenerFuncs{Score: func(s int) { reports = append(reports, s) }})
	g.Start()

	for range 90 {
		g.Step(1)
	}

	// One report every 30 logical frames
	if len(reports) != 3 {
		t.Errorf("OnScore fired %d times in 90 frames, expected 3: %v", len(reports), reports)
	}
}

func TestDeterministicReplay(t *testing.T) {
	dts := []float64{0, 1, 1, 0.5, 2, 1, 3, 1, 0.25, 1.75}

	run := func() Snapshot {
		g := New(config.DefaultRunnerConfig(), 42, nil)
		g.Start()
		for i := range 3000 {
			if i%45 == 0 {
				g.Jump()
			}
			g.Step(dts[i%len(dts)])
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed, inputs and deltas diverged:\n%+v\n%+v", a.Status, b.Status)
	}
}

func TestFirstFrameHasNoDelta(t *testing.T) {
	g := New(quietConfig(), 1, nil)
	loop := core.NewLoop()
	g.Attach(loop, nil)
	g.Start()

	loop.Advance(10 * time.Second)
	if g.distance != 0 {
		t.Errorf("first frame moved the world by %v", g.distance)
	}

	loop.Advance(10*time.Second + frame)
	if g.distance == 0 {
		t.Error("second frame should move the world")
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	g := New(cfg, 9, nil)
	loop := core.NewLoop()
	presented := 0
	g.Attach(loop, core.SurfaceFunc[Snapshot](func(Snapshot) { presented++ }))
	g.Start()

	ts := time.Duration(0)
	advance := func(n int) {
		for range n {
			ts += frame
			loop.Advance(ts)
		}
	}

	advance(60)
	g.Jump()
	advance(5)
	g.Pause(true)
	before := g.Snapshot()

	advance(10)
	after := g.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("world changed while paused:\nbefore %+v\nafter  %+v", before.Actor, after.Actor)
	}
	if after.State != core.StatePaused {
		t.Errorf("state = %v, expected paused", after.State)
	}

	// Resuming continues with a single frame's delta, not the paused span
	g.Pause(false)
	advance(1)
	moved := g.distance - before.Distance
	if math.Abs(moved-before.Speed) > 1e-3 {
		t.Errorf("first frame after resume moved %v, expected about %v", moved, before.Speed)
	}
	if presented < 76 {
		t.Errorf("surface received %d frames, expected one per Advance", presented)
	}
}

func TestInputGating(t *testing.T) {
	g := New(quietConfig(), 1, nil)

	g.Handle(core.ActionUp)
	if g.Status().State != core.StatePlaying {
		t.Fatalf("up should start an idle game, state = %v", g.Status().State)
	}
	if g.jumps != 0 || !g.actor.Grounded {
		t.Error("the starting press should not also jump")
	}

	g.Handle(core.ActionPause)
	g.Handle(core.ActionJump)
	if g.jumps != 0 {
		t.Error("jump while paused should be ignored")
	}
	g.Handle(core.ActionPause)

	g.Handle(core.ActionJump)
	if g.jumps != 1 {
		t.Errorf("jumps = %d, expected 1", g.jumps)
	}
	g.Handle(core.ActionJump)
	if g.jumps != 1 {
		t.Error("mid-air jump should be ignored")
	}

	g.session.AddScore(500)
	g.Handle(core.ActionRestart)
	if st := g.Status(); st.State != core.StatePlaying || st.Score != 0 {
		t.Errorf("restart should begin a fresh session, got %+v", st)
	}
}

func TestJumpStartsFromIdleAndGameOver(t *testing.T) {
	g := New(quietConfig(), 1, nil)

	g.Jump()
	if g.Status().State != core.StatePlaying {
		t.Fatalf("jump while idle: state = %v", g.Status().State)
	}
	if !g.actor.Grounded || g.jumps != 0 {
		t.Error("the starting jump should not leave the ground")
	}

	g.end()
	if g.Status().State != core.StateGameOver {
		t.Fatalf("state = %v, expected game over", g.Status().State)
	}
	g.Jump()
	if st := g.Status(); st.State != core.StatePlaying || st.Score != 0 {
		t.Errorf("jump after game over should begin a fresh session, got %+v", st)
	}

	g.Pause(true)
	g.Jump()
	if g.Status().State != core.StatePaused || g.jumps != 0 {
		t.Error("jump while paused should do nothing")
	}
}

func TestClearedWhenTrailingEdgePassesLeadingEdge(t *testing.T) {
	cfg := quietConfig()
	cfg.Scoring.PointsPerFrame = 0
	g := New(cfg, 1, nil)
	g.Start()

	// Airborne actor; the obstacle's trailing edge ends up between the
	// actor's two edges after one step.
	g.actor.Y = 0
	g.actor.Grounded = false
	speed := g.scaling.Speed(1)
	g.obstacles.obstacles = append(g.obstacles.obstacles, Obstacle{
		X: g.actor.X + g.actor.Width/2 - 40 + speed, Y: 140, Width: 40, Height: 30,
	})

	g.Step(1)
	if g.Status().State != core.StatePlaying {
		t.Fatal("an airborne actor should not collide")
	}
	if g.cleared != 1 || g.Status().Score != cfg.Scoring.ClearBonus {
		t.Errorf("cleared = %d score = %d, expected one bonus", g.cleared, g.Status().Score)
	}
}

func TestDisposeStopsFrames(t *testing.T) {
	g := New(quietConfig(), 1, nil)
	loop := core.NewLoop()
	g.Attach(loop, nil)
	g.Start()

	loop.Advance(0)
	loop.Advance(frame)
	g.Dispose()
	d := g.distance

	loop.Advance(2 * frame)
	if g.distance != d || loop.Pending() != 0 {
		t.Error("frame callback ran after Dispose")
	}
}

func TestPainterDrawsWorld(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), 1, nil)
	screen := core.NewScreen(80, 24)
	loop := core.NewLoop()
	g.Mount(loop, screen)

	loop.Advance(0)
	if !strings.Contains(screen.String(), "PROMPT RUNNER") {
		t.Error("idle screen should show the title overlay")
	}

	g.Start()
	loop.Advance(frame)
	out := screen.String()
	if !strings.ContainsRune(out, GroundChar) || !strings.ContainsRune(out, ActorChar) {
		t.Errorf("expected ground and actor on screen:\n%s", out)
	}
	if !strings.Contains(screen.Row(0), "Score:") {
		t.Errorf("HUD missing: %q", screen.Row(0))
	}
}
