package simon

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-simon/internal/core"
)

func TestChannelRendererFullBuffer(t *testing.T) {
	r := NewChannelRenderer(1)
	r.ShowLevel(2)

	// Cosmetic events are dropped rather than waiting.
	r.Flash(0, time.Second)
	r.Distract(core.FadeBackground, time.Second)

	sent := make(chan struct{})
	go func() {
		r.ShowGameOver("Game over, you made it to level: 2")
		close(sent)
	}()

	select {
	case <-sent:
		t.Fatal("ShowGameOver() returned while the buffer was full")
	case <-time.After(20 * time.Millisecond):
	}

	if evt := <-r.Events(); evt != (LevelEvent{Level: 2}) {
		t.Errorf("first event = %#v, expected LevelEvent{Level: 2}", evt)
	}

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("ShowGameOver() still blocked after the buffer drained")
	}
	if evt, ok := (<-r.Events()).(GameOverEvent); !ok || evt.Label == "" {
		t.Errorf("second event = %#v, expected GameOverEvent", evt)
	}
}

func TestChannelRendererCloseReleasesSend(t *testing.T) {
	r := NewChannelRenderer(1)
	r.SetInputEnabled(false)

	sent := make(chan struct{})
	go func() {
		r.SetInputEnabled(true)
		close(sent)
	}()

	r.Close()
	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("SetInputEnabled() blocked after Close")
	}

	// Sends after Close are discarded.
	r.ShowLevel(5)
	if n := len(r.Events()); n > 1 {
		t.Errorf("len(Events()) = %d after Close, expected at most 1", n)
	}
}
