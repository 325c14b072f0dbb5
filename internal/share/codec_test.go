package share

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-simon/internal/core"
)

func TestEncode(t *testing.T) {
	got := Encode(3, core.Modes{Shuffle: true, Distract: true}, 99)
	expected := "level=3&modes=true,false,true&seed=99"
	if got != expected {
		t.Errorf("Encode() = %q, expected %q", got, expected)
	}
}

func TestForResultUsesCompletedLevel(t *testing.T) {
	got := ForResult(8, core.Modes{}, 1234)
	expected := "level=7&modes=false,false,false&seed=1234"
	if got != expected {
		t.Errorf("ForResult() = %q, expected %q", got, expected)
	}
}

func TestLink(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		expected string
	}{
		{"with base", "http://nickjj.github.com/simon", "http://nickjj.github.com/simon?level=1&modes=false,false,false&seed=5"},
		{"trailing question mark", "http://example.com/simon?", "http://example.com/simon?level=1&modes=false,false,false&seed=5"},
		{"no base", "", "level=1&modes=false,false,false&seed=5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Link(tc.base, Encode(1, core.Modes{}, 5))
			if got != tc.expected {
				t.Errorf("Link() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestDecodeValid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected State
	}{
		{
			name:     "bare query",
			input:    "level=3&modes=true,false,true&seed=99",
			expected: State{Level: 3, Modes: core.Modes{Shuffle: true, Distract: true}, Seed: 99},
		},
		{
			name:     "leading question mark",
			input:    "?level=1&modes=false,false,false&seed=0",
			expected: State{Level: 1, Seed: 0},
		},
		{
			name:     "full url",
			input:    "http://nickjj.github.com/simon?level=12&modes=false,true,false&seed=1349823412345",
			expected: State{Level: 12, Modes: core.Modes{Rotate: true}, Seed: 1349823412345},
		},
		{
			name:     "negative seed",
			input:    "level=2&modes=false,false,false&seed=-7",
			expected: State{Level: 2, Seed: -7},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(tc.input)
			if err != nil {
				t.Fatalf("Decode(%q) failed: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("Decode(%q) = %+v, expected %+v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no query", "http://nickjj.github.com/simon"},
		{"negative level and two modes", "level=-1&modes=true,false&seed=99"},
		{"zero level", "level=0&modes=true,false,true&seed=99"},
		{"fractional level", "level=1.5&modes=true,false,true&seed=99"},
		{"signed level", "level=+3&modes=true,false,true&seed=99"},
		{"missing level", "modes=true,false,true&seed=99"},
		{"four modes", "level=3&modes=true,false,true,true&seed=99"},
		{"mode not boolean literal", "level=3&modes=TRUE,false,true&seed=99"},
		{"empty mode", "level=3&modes=true,,true&seed=99"},
		{"missing seed", "level=3&modes=true,false,true"},
		{"non numeric seed", "level=3&modes=true,false,true&seed=abc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.input)
			if !errors.Is(err, ErrNoState) {
				t.Errorf("Decode(%q) error = %v, expected ErrNoState", tc.input, err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	seeds := []int64{0, 1, 42, -5, 1349823412345, 9007199254740991}
	levels := []int{1, 2, 50, 100, 250}

	for _, seed := range seeds {
		for _, level := range levels {
			for bits := 0; bits < 8; bits++ {
				modes := core.Modes{Shuffle: bits&1 != 0, Rotate: bits&2 != 0, Distract: bits&4 != 0}
				got, err := Decode(Encode(level, modes, seed))
				if err != nil {
					t.Fatalf("Decode(Encode(%d, %v, %d)) failed: %v", level, modes, seed, err)
				}
				want := State{Level: level, Modes: modes, Seed: seed}
				if got != want {
					t.Errorf("round trip = %+v, expected %+v", got, want)
				}
				if got.Query() != Encode(level, modes, seed) {
					t.Errorf("Query() = %q", got.Query())
				}
			}
		}
	}
}
