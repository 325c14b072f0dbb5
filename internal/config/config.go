// Package config provides YAML-based game configuration loading and speed
// presets for Simon.
package config

import "github.com/vovakirdan/tui-simon/internal/core"

// SimonConfig contains all configuration for a Simon game.
type SimonConfig struct {
	Game     GameConfig     `yaml:"game"`
	Timing   TimingConfig   `yaml:"timing"`
	Modes    core.Modes     `yaml:"modes"`
	Distract DistractConfig `yaml:"distract"`
	Share    ShareConfig    `yaml:"share"`
}

// GameConfig defines level bounds.
type GameConfig struct {
	LevelStart int `yaml:"level_start"`
	LevelMax   int `yaml:"level_max"`
}

// TimingConfig defines the unscaled animation durations.
type TimingConfig struct {
	TurnMs            int     `yaml:"turn_ms"`
	LevelTransitionMs int     `yaml:"level_transition_ms"`
	FlashColorMs      int     `yaml:"flash_color_ms"`
	Scale             float64 `yaml:"scale"` // Global speed multiplier, 2 = twice as fast
}

// DistractConfig defines how often distractions play.
type DistractConfig struct {
	Chance     float64 `yaml:"chance"`       // Probability per tick, 0..1
	MinDelayMs int     `yaml:"min_delay_ms"` // Shortest tick interval
	MaxDelayMs int     `yaml:"max_delay_ms"` // Tick interval upper bound
}

// ShareConfig defines where share links point.
type ShareConfig struct {
	BaseURL string `yaml:"base_url"`
}
