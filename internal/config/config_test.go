package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var runner RunnerConfig
	if err := yaml.Unmarshal(GetDefaultYAML(RunnerID), &runner); err != nil {
		t.Fatalf("embedded runner yaml: %v", err)
	}
	if !reflect.DeepEqual(runner, DefaultRunnerConfig()) {
		t.Errorf("embedded runner yaml drifted from DefaultRunnerConfig:\n%+v\n%+v", runner, DefaultRunnerConfig())
	}

	var snake SnakeConfig
	if err := yaml.Unmarshal(GetDefaultYAML(SnakeID), &snake); err != nil {
		t.Fatalf("embedded snake yaml: %v", err)
	}
	if !reflect.DeepEqual(snake, DefaultSnakeConfig()) {
		t.Errorf("embedded snake yaml drifted from DefaultSnakeConfig:\n%+v\n%+v", snake, DefaultSnakeConfig())
	}

	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no default yaml")
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Errorf("runner defaults invalid: %v", err)
	}
	if err := DefaultSnakeConfig().Validate(); err != nil {
		t.Errorf("snake defaults invalid: %v", err)
	}
}

func TestRunnerValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
	}{
		{"upward gravity", func(c *RunnerConfig) { c.Physics.Gravity = -1 }},
		{"downward jump", func(c *RunnerConfig) { c.Physics.JumpImpulse = 5 }},
		{"inverted gap range", func(c *RunnerConfig) { c.Obstacles.MaxGap = c.Obstacles.MinGap - 1 }},
		{"zero floor", func(c *RunnerConfig) { c.Obstacles.GapFloor = 0 }},
		{"empty catalog", func(c *RunnerConfig) { c.Obstacles.Catalog = nil }},
		{"zero level step", func(c *RunnerConfig) { c.Scoring.LevelEvery = 0 }},
		{"ground above actor", func(c *RunnerConfig) { c.World.GroundLine = 10 }},
		{"sizeless obstacle", func(c *RunnerConfig) { c.Obstacles.Catalog[0].Width = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tc.mutate(&cfg)
			if cfg.Validate() == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSnakeValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SnakeConfig)
	}{
		{"tiny board", func(c *SnakeConfig) { c.Board.Width = 3 }},
		{"snake wider than half board", func(c *SnakeConfig) { c.Board.InitialLength = 15 }},
		{"zero floor", func(c *SnakeConfig) { c.Tick.Floor = 0 }},
		{"base under floor", func(c *SnakeConfig) { c.Tick.Base = time.Millisecond }},
		{"zero apples per level", func(c *SnakeConfig) { c.Scoring.ApplesPerLevel = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.mutate(&cfg)
			if cfg.Validate() == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("tick:\n  base: 200ms\nscoring:\n  apples_per_level: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake: %v", err)
	}
	if cfg.Tick.Base != 200*time.Millisecond {
		t.Errorf("Tick.Base = %v, expected 200ms", cfg.Tick.Base)
	}
	if cfg.Scoring.ApplesPerLevel != 3 {
		t.Errorf("ApplesPerLevel = %d, expected 3", cfg.Scoring.ApplesPerLevel)
	}
	// Unmentioned fields keep their defaults
	if cfg.Board.Width != 20 || cfg.Tick.Floor != 60*time.Millisecond {
		t.Errorf("partial file lost defaults: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())

	if _, err := LoadRunner(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics:\n  gravity: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(bad); err == nil {
		t.Error("invalid custom config should fail validation")
	}
}

func TestLoadUserConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)
	if err := os.WriteFile(filepath.Join(dir, "runner.yaml"), []byte("speed:\n  base: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner("")
	if err != nil {
		t.Fatalf("LoadRunner: %v", err)
	}
	if cfg.Speed.Base != 9 {
		t.Errorf("Speed.Base = %v, expected 9 from user config dir", cfg.Speed.Base)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)
	// A broken user file is skipped
	if err := os.WriteFile(filepath.Join(dir, "snake.yaml"), []byte("board: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultSnakeConfig()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q): %v", name, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestPresetsKeepConfigValid(t *testing.T) {
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		runner := DefaultRunnerConfig()
		ApplyRunnerPreset(&runner, p)
		if err := runner.Validate(); err != nil {
			t.Errorf("runner %s: %v", p, err)
		}

		snake := DefaultSnakeConfig()
		ApplySnakePreset(&snake, p)
		if err := snake.Validate(); err != nil {
			t.Errorf("snake %s: %v", p, err)
		}
	}

	easy, hard := DefaultRunnerConfig(), DefaultRunnerConfig()
	ApplyRunnerPreset(&easy, DifficultyEasy)
	ApplyRunnerPreset(&hard, DifficultyHard)
	if easy.Speed.Base >= hard.Speed.Base {
		t.Errorf("easy speed %v should be below hard speed %v", easy.Speed.Base, hard.Speed.Base)
	}
}

func TestMarshalRoundTripsDurations(t *testing.T) {
	data, err := Marshal(DefaultSnakeConfig())
	if err != nil {
		t.Fatal(err)
	}
	var back SnakeConfig
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("re-parse: %v\n%s", err, data)
	}
	if back.Tick != DefaultSnakeConfig().Tick {
		t.Errorf("tick = %+v, expected %+v", back.Tick, DefaultSnakeConfig().Tick)
	}
}
