// Package share encodes a finished game into a compact query string so it can
// be replayed by someone else, and decodes such strings back.
//
// A shared link looks like:
//
//	http://nickjj.github.com/simon?level=7&modes=true,false,false&seed=1349823412345
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-simon/internal/core"
)

// ErrNoState is returned when the input does not hold a valid shared game.
// Callers treat it as "start a normal game".
var ErrNoState = errors.New("share: no shareable state present")

// State is the replayable part of a game.
type State struct {
	Level int        // Level to start the replay at
	Modes core.Modes // Modes the shared game was played with
	Seed  int64      // Pattern seed
}

// Encode returns the query string for the given game.
func Encode(level int, modes core.Modes, seed int64) string {
	f := modes.Flags()
	return fmt.Sprintf("level=%d&modes=%t,%t,%t&seed=%d", level, f[0], f[1], f[2], seed)
}

// ForResult encodes a finished game. The level is the last one the player
// actually completed, which is one below the level they lost on.
func ForResult(level int, modes core.Modes, seed int64) string {
	return Encode(level-1, modes, seed)
}

// Link joins a base URL and an encoded query.
func Link(base, query string) string {
	if base == "" {
		return query
	}
	return strings.TrimRight(base, "?") + "?" + query
}

// Decode parses a bare query, "?query" or full URL.
// Any validation failure yields ErrNoState.
func Decode(s string) (State, error) {
	raw := strings.TrimSpace(s)
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	if raw == "" {
		return State{}, ErrNoState
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrNoState, err)
	}

	level, ok := positiveInt(values.Get("level"))
	if !ok {
		return State{}, ErrNoState
	}

	modes := strings.Split(values.Get("modes"), ",")
	if len(modes) != 3 {
		return State{}, ErrNoState
	}
	var flags [3]bool
	for i, v := range modes {
		switch v {
		case "true":
			flags[i] = true
		case "false":
			flags[i] = false
		default:
			return State{}, ErrNoState
		}
	}

	seed, err := strconv.ParseInt(values.Get("seed"), 10, 64)
	if err != nil {
		return State{}, ErrNoState
	}

	return State{
		Level: level,
		Modes: core.ModesFromFlags(flags),
		Seed:  seed,
	}, nil
}

// Query re-encodes the state.
func (s State) Query() string {
	return Encode(s.Level, s.Modes, s.Seed)
}

// positiveInt accepts decimal integers >= 1 with no sign or fraction.
func positiveInt(v string) (int, bool) {
	if v == "" || v[0] == '+' || v[0] == '-' {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
