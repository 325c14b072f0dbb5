package simon

import "time"

const (
	// speedStep is how much faster each level plays (1.5% per level).
	speedStep = 0.015
	// minScaleSpeed keeps high levels humanly playable.
	minScaleSpeed = 0.25
	// minScale guards the global speed multiplier against zero or negatives.
	minScale = 0.01
)

// BaseTiming holds the level-independent durations.
// Keep the ratio between the three values when changing them.
type BaseTiming struct {
	Turn            time.Duration
	LevelTransition time.Duration
	FlashColor      time.Duration
}

// DefaultBaseTiming returns the classic durations.
func DefaultBaseTiming() BaseTiming {
	return BaseTiming{
		Turn:            1500 * time.Millisecond,
		LevelTransition: 750 * time.Millisecond,
		FlashColor:      375 * time.Millisecond,
	}
}

// Unscaled returns the base durations as a Timing with no level scaling.
func (b BaseTiming) Unscaled() Timing {
	return Timing{
		Turn:            b.Turn,
		LevelTransition: b.LevelTransition,
		FlashColor:      b.FlashColor,
		ScaleSpeed:      1,
	}
}

// Timing is the set of durations used for one level.
type Timing struct {
	Turn            time.Duration
	LevelTransition time.Duration
	FlashColor      time.Duration
	ScaleSpeed      float64 // Level speed factor, never below 0.25
}

// ComputeTiming scales the base durations for level.
//
// scale is the global speed multiplier (2 plays twice as fast) and is
// clamped to 0.01 when not positive. reset replaces the level factor when
// it comes out as exactly zero.
func ComputeTiming(level int, base BaseTiming, scale, reset float64) Timing {
	if scale <= 0 {
		scale = minScale
	}

	scaleSpeed := 1 - float64(level)*speedStep
	if scaleSpeed == 0 {
		scaleSpeed = reset
	}
	if scaleSpeed <= minScaleSpeed {
		scaleSpeed = minScaleSpeed
	}

	return Timing{
		Turn:            scaleDuration(base.Turn, scale, scaleSpeed),
		LevelTransition: scaleDuration(base.LevelTransition, scale, scaleSpeed),
		FlashColor:      scaleDuration(base.FlashColor, scale, scaleSpeed),
		ScaleSpeed:      scaleSpeed,
	}
}

func scaleDuration(d time.Duration, scale, speed float64) time.Duration {
	return time.Duration(float64(d) / scale * speed)
}
