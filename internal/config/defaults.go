package config

import (
	_ "embed"
)

//go:embed defaults/simon.yaml
var defaultSimonYAML []byte

// DefaultSimonConfig returns the default Simon configuration.
func DefaultSimonConfig() SimonConfig {
	return SimonConfig{
		Game: GameConfig{
			LevelStart: 1,
			LevelMax:   100,
		},
		Timing: TimingConfig{
			TurnMs:            1500,
			LevelTransitionMs: 750,
			FlashColorMs:      375,
			Scale:             1,
		},
		Distract: DistractConfig{
			Chance:     0.75,
			MinDelayMs: 1000,
			MaxDelayMs: 4000,
		},
		Share: ShareConfig{
			BaseURL: "http://nickjj.github.com/simon",
		},
	}
}
