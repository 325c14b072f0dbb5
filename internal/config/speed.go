package config

import "fmt"

// SpeedPreset represents a named global speed.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedInsane SpeedPreset = "insane"
)

// SpeedPresets lists the presets from slowest to fastest.
var SpeedPresets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInsane}

// ScaleForPreset returns the timing scale for a preset.
func ScaleForPreset(preset SpeedPreset) float64 {
	switch preset {
	case SpeedSlow:
		return 0.75
	case SpeedFast:
		return 1.5
	case SpeedInsane:
		return 2
	default:
		return 1
	}
}

// ParseSpeedPreset validates a preset name. An empty name is normal speed.
func ParseSpeedPreset(name string) (SpeedPreset, error) {
	if name == "" {
		return SpeedNormal, nil
	}
	for _, p := range SpeedPresets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown speed %q (use slow, normal, fast or insane)", name)
}

// ApplySpeedPreset sets the timing scale from a preset.
func ApplySpeedPreset(cfg *SimonConfig, preset SpeedPreset) {
	cfg.Timing.Scale = ScaleForPreset(preset)
}
