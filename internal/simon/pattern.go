// Package simon implements the game engine: the seeded tile pattern, the
// level timing model and the session state machine that drives a renderer.
package simon

import (
	"github.com/vovakirdan/tui-simon/internal/core"
	"github.com/vovakirdan/tui-simon/internal/mt"
)

// GeneratePattern returns the whole game's tile sequence for seed.
// Each element is floor(rng*6), so every tile index is in [0, 5].
// The same seed and levelMax always give the same sequence.
func GeneratePattern(seed int64, levelMax int) []int {
	if levelMax <= 0 {
		return []int{}
	}

	rng := mt.New(seed)
	pattern := make([]int, levelMax)
	for i := range pattern {
		pattern[i] = int(rng.Float64() * core.TileCount)
	}
	return pattern
}
