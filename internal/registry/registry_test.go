package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/prompt-arcade/internal/core"
)

type stubGame struct {
	id      string
	session *core.Session
}

func (g *stubGame) ID() string                         { return g.id }
func (g *stubGame) Title() string                      { return "Stub" }
func (g *stubGame) Mount(core.Scheduler, *core.Screen) {}
func (g *stubGame) Start()                             { g.session.Start() }
func (g *stubGame) Pause(p bool)                       { g.session.SetPaused(p) }
func (g *stubGame) Dispose()                           {}
func (g *stubGame) Handle(core.Action)                 {}
func (g *stubGame) Subscribe(l core.Listener) func()   { return g.session.Subscribe(l) }
func (g *stubGame) Status() core.Status                { return g.session.Status() }

func TestRegisterAndCreate(t *testing.T) {
	var seen core.RuntimeConfig
	Register("stub_create", "Stub Create", func(cfg core.RuntimeConfig) (Game, error) {
		seen = cfg
		return &stubGame{id: "stub_create", session: core.NewSession("stub_create", nil)}, nil
	})

	if !Exists("stub_create") {
		t.Fatal("registered game should exist")
	}
	if Title("stub_create") != "Stub Create" {
		t.Errorf("Title = %q", Title("stub_create"))
	}

	g, err := Create("stub_create", core.RuntimeConfig{Seed: 7})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if seen.Seed != 7 {
		t.Errorf("factory saw seed %d, expected 7", seen.Seed)
	}
	if g.Status().State != core.StateIdle {
		t.Errorf("new game state = %v, expected idle", g.Status().State)
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub_create" {
			found = true
		}
	}
	if !found {
		t.Error("List() should include the registered game")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game", core.DefaultConfig()); err == nil {
		t.Error("expected error for unknown game")
	}
	if Title("no_such_game") != "no_such_game" {
		t.Error("unknown title should fall back to the id")
	}
}

func TestCreateWrapsFactoryError(t *testing.T) {
	boom := errors.New("bad config")
	Register("stub_broken", "Broken", func(core.RuntimeConfig) (Game, error) {
		return nil, boom
	})

	_, err := Create("stub_broken", core.DefaultConfig())
	if !errors.Is(err, boom) {
		t.Errorf("Create error = %v, expected to wrap %v", err, boom)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(core.RuntimeConfig) (Game, error) { return nil, nil }
	Register("stub_dup", "Dup", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", "Dup", f)
}
