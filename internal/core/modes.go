// Package core provides the small domain types shared by the game engine,
// the score board and the share codec. It has no external dependencies.
package core

import "strings"

// Modes holds the independent game mode toggles captured at game start.
type Modes struct {
	Shuffle  bool `json:"shuffle" yaml:"shuffle"`   // Tile order changes every level
	Rotate   bool `json:"rotate" yaml:"rotate"`     // Board keeps rotating while playing
	Distract bool `json:"distract" yaml:"distract"` // Random distractions play during the game
}

// Flags returns the toggles in their canonical order: shuffle, rotate, distract.
func (m Modes) Flags() [3]bool {
	return [3]bool{m.Shuffle, m.Rotate, m.Distract}
}

// ModesFromFlags is the inverse of Modes.Flags.
func ModesFromFlags(f [3]bool) Modes {
	return Modes{Shuffle: f[0], Rotate: f[1], Distract: f[2]}
}

// Names returns the names of the enabled modes, in canonical order.
func (m Modes) Names() []string {
	var names []string
	if m.Shuffle {
		names = append(names, "shuffle")
	}
	if m.Rotate {
		names = append(names, "rotate")
	}
	if m.Distract {
		names = append(names, "distract")
	}
	return names
}

// String returns a human-readable list of enabled modes, or "classic".
func (m Modes) String() string {
	names := m.Names()
	if len(names) == 0 {
		return "classic"
	}
	return strings.Join(names, ", ")
}
