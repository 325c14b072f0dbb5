package core

import "time"

// Distraction is one of the screen effects played in distract mode.
type Distraction int

const (
	FadeBackground Distraction = iota
	NyanCat
	Fireworks
	TrollTrail
	Genius
	Jackie
)

// Distractions lists every variant, used for uniform selection.
var Distractions = []Distraction{FadeBackground, NyanCat, Fireworks, TrollTrail, Genius, Jackie}

// String returns a human-readable name for the distraction.
func (d Distraction) String() string {
	switch d {
	case FadeBackground:
		return "FadeBackground"
	case NyanCat:
		return "NyanCat"
	case Fireworks:
		return "Fireworks"
	case TrollTrail:
		return "TrollTrail"
	case Genius:
		return "Genius"
	case Jackie:
		return "Jackie"
	default:
		return "Unknown"
	}
}

// Duration is how long the distraction occupies the screen.
// No new distraction starts while one is playing.
func (d Distraction) Duration() time.Duration {
	switch d {
	case FadeBackground:
		return 3 * time.Second
	case NyanCat:
		return 4 * time.Second
	case Fireworks:
		return 1500 * time.Millisecond
	case TrollTrail:
		return 5 * time.Second
	case Genius, Jackie:
		return 6 * time.Second
	default:
		return time.Second
	}
}

// Float64Source is the subset of a random generator the pickers need.
type Float64Source interface {
	Float64() float64
}

// PickDistraction chooses a distraction uniformly at random.
func PickDistraction(r Float64Source) Distraction {
	i := int(r.Float64() * float64(len(Distractions)))
	if i >= len(Distractions) {
		i = len(Distractions) - 1
	}
	return Distractions[i]
}
