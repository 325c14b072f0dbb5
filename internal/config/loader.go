package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-simon/internal/simon"
)

const configFile = "simon.yaml"

// Load loads Simon configuration.
// Search order: customPath -> ~/.simon/configs/simon.yaml -> ./configs/simon.yaml -> embedded default
// Files only need to set the keys they change; the rest keep default values.
func Load(customPath string) (SimonConfig, error) {
	cfg := DefaultSimonConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultSimonConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultSimonConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSimonYAML, &cfg); err != nil {
		return DefaultSimonConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".simon", "configs", filename)
}

// ToSession converts the file config into session rules.
func (c SimonConfig) ToSession() simon.Config {
	cfg := simon.DefaultConfig()

	if c.Game.LevelStart > 0 {
		cfg.LevelStart = c.Game.LevelStart
	}
	if c.Game.LevelMax > 0 {
		cfg.LevelMax = c.Game.LevelMax
	}
	if cfg.LevelStart > cfg.LevelMax {
		cfg.LevelStart = cfg.LevelMax
	}

	if c.Timing.TurnMs > 0 {
		cfg.Base.Turn = ms(c.Timing.TurnMs)
	}
	if c.Timing.LevelTransitionMs > 0 {
		cfg.Base.LevelTransition = ms(c.Timing.LevelTransitionMs)
	}
	if c.Timing.FlashColorMs > 0 {
		cfg.Base.FlashColor = ms(c.Timing.FlashColorMs)
	}
	// Scale <= 0 is clamped by the timing model, so it is passed through.
	cfg.Scale = c.Timing.Scale

	if c.Distract.Chance >= 0 && c.Distract.Chance <= 1 {
		cfg.Distract.Chance = c.Distract.Chance
	}
	if c.Distract.MinDelayMs > 0 {
		cfg.Distract.MinDelay = ms(c.Distract.MinDelayMs)
	}
	if c.Distract.MaxDelayMs > 0 {
		cfg.Distract.MaxDelay = ms(c.Distract.MaxDelayMs)
	}
	if cfg.Distract.MaxDelay < cfg.Distract.MinDelay {
		cfg.Distract.MaxDelay = cfg.Distract.MinDelay
	}

	cfg.ShareBaseURL = c.Share.BaseURL
	return cfg
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
