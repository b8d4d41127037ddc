package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Game identifiers used for config file names.
const (
	RunnerID = "runner"
	SnakeID  = "snake"
)

// ConfigDirEnv overrides the user config directory (~/.arcade/configs).
const ConfigDirEnv = "ARCADE_CONFIG_DIR"

type validatable interface {
	Validate() error
}

// LoadRunner loads Prompt Runner configuration.
// Search order: customPath -> user config dir -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	return load(RunnerID, customPath, defaultRunnerYAML, DefaultRunnerConfig)
}

// LoadSnake loads Snake configuration.
// Search order: customPath -> user config dir -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load(SnakeID, customPath, defaultSnakeYAML, DefaultSnakeConfig)
}

// load decodes the first config found on top of the hardcoded defaults, so
// partial files only override what they mention.
func load[T validatable](id, customPath string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	// Custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Optional locations are skipped when missing or broken
	for _, path := range []string{userConfigPath(id + ".yaml"), filepath.Join("configs", id+".yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := defaults()
		if yaml.Unmarshal(data, &candidate) == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil || cfg.Validate() != nil {
		return defaults(), nil // Fallback to hardcoded if embed is unusable
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if no
// config directory is available.
func userConfigPath(filename string) string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return filepath.Join(dir, filename)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Base = 5
		cfg.Speed.Increment = 0.4
		cfg.Obstacles.GapReduction = 20
		cfg.Actor.HitboxInset = 6
	case DifficultyHard:
		cfg.Speed.Base = 7.5
		cfg.Speed.Increment = 0.8
		cfg.Obstacles.GapReduction = 40
		cfg.Actor.HitboxInset = 2
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Tick.Base = cfg.Tick.Base * 6 / 5
		cfg.Tick.Step = cfg.Tick.Step * 4 / 5
	case DifficultyHard:
		cfg.Tick.Base = cfg.Tick.Base * 4 / 5
		cfg.Tick.Step = cfg.Tick.Step * 6 / 5
		cfg.Scoring.ApplesPerLevel = max(1, cfg.Scoring.ApplesPerLevel-1)
	}
	if cfg.Tick.Base < cfg.Tick.Floor {
		cfg.Tick.Base = cfg.Tick.Floor
	}
}

// Marshal renders a config back to YAML.
func Marshal(cfg any) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
