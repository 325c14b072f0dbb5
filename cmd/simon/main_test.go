package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-simon/internal/core"
	"github.com/vovakirdan/tui-simon/internal/simon"
)

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr     string
		expected string
	}{
		{":23234", "23234"},
		{"localhost:2222", "2222"},
		{"nonsense", "nonsense"},
	}

	for _, tt := range tests {
		if got := portOf(tt.addr); got != tt.expected {
			t.Errorf("portOf(%q) = %q, expected %q", tt.addr, got, tt.expected)
		}
	}
}

func TestWaitForTurnPlaysPerfectGame(t *testing.T) {
	var out bytes.Buffer
	clock := simon.NewManualScheduler()

	cfg := simon.DefaultConfig()
	cfg.LevelMax = 3
	sess := simon.NewSession(cfg, simon.Deps{
		Renderer:  textRenderer{out: &out, clock: clock},
		Scheduler: clock,
		NewSeed:   func() int64 { return 42 },
		Now:       func() time.Time { return time.Date(2026, 10, 6, 9, 5, 3, 0, time.UTC) },
	})
	sess.Start(1, core.Modes{})

	for sess.State().Running {
		if !waitForTurn(sess, clock) {
			t.Fatal("waitForTurn() stalled")
		}
		st := sess.State()
		for i := 0; i < st.Level && sess.State().Running; i++ {
			sess.SubmitMove(sess.Pattern()[i])
		}
	}

	result, ok := sess.LastResult()
	if !ok || !result.Won || result.Level != 3 {
		t.Errorf("LastResult() = %+v, %v, expected a win at level 3", result, ok)
	}
	for _, s := range []string{"flash blue", "level 3", "Well done, you hit the level cap of: 3"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output missing %q", s)
		}
	}
}
