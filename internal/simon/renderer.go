package simon

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-simon/internal/core"
)

// Renderer is the presentation collaborator. The session only tells it what
// to show and when; how it looks is up to the implementation.
type Renderer interface {
	Flash(tile int, d time.Duration)
	ShowLevel(level int)
	ShowGameOver(label string)
	SetInputEnabled(enabled bool)

	// ShowShare offers a link that replays the finished game.
	ShowShare(link string)
	// ResetView drops shared-game state after a replayed game ends.
	ResetView()
	// ArrangeTiles lays the tiles out in the given order (tile indexes).
	ArrangeTiles(order []int)
	SetRotating(on bool)
	Distract(kind core.Distraction, d time.Duration)
}

// Event is an intent emitted through a ChannelRenderer.
type Event interface {
	simonEvent()
}

// FlashEvent lights a tile.
type FlashEvent struct {
	Tile     int
	Duration time.Duration
}

func (FlashEvent) simonEvent() {}

// LevelEvent shows the current level.
type LevelEvent struct {
	Level int
}

func (LevelEvent) simonEvent() {}

// GameOverEvent shows the end-of-game label.
type GameOverEvent struct {
	Label string
}

func (GameOverEvent) simonEvent() {}

// InputEvent enables or disables tile input.
type InputEvent struct {
	Enabled bool
}

func (InputEvent) simonEvent() {}

// ShareEvent carries a share link for the finished game.
type ShareEvent struct {
	Link string
}

func (ShareEvent) simonEvent() {}

// ResetViewEvent asks the view to drop shared-game parameters.
type ResetViewEvent struct{}

func (ResetViewEvent) simonEvent() {}

// ArrangeEvent changes the on-screen tile order.
type ArrangeEvent struct {
	Order []int
}

func (ArrangeEvent) simonEvent() {}

// RotateEvent starts or stops board rotation.
type RotateEvent struct {
	On bool
}

func (RotateEvent) simonEvent() {}

// DistractEvent plays a distraction for Duration.
type DistractEvent struct {
	Kind     core.Distraction
	Duration time.Duration
}

func (DistractEvent) simonEvent() {}

// ChannelRenderer turns Renderer calls into events on a buffered channel.
// When the buffer is full, flashes and distractions are dropped; every other
// event waits for room until Close.
type ChannelRenderer struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannelRenderer creates a renderer with the given buffer size.
func NewChannelRenderer(bufferSize int) *ChannelRenderer {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &ChannelRenderer{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Events returns the receive side of the event channel.
func (r *ChannelRenderer) Events() <-chan Event {
	return r.events
}

// Done is closed once Close has been called.
func (r *ChannelRenderer) Done() <-chan struct{} {
	return r.done
}

// Close stops delivery. Later sends are discarded.
func (r *ChannelRenderer) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
	})
}

func (r *ChannelRenderer) send(evt Event) {
	select {
	case <-r.done:
		return
	default:
	}

	switch evt.(type) {
	case FlashEvent, DistractEvent:
		select {
		case r.events <- evt:
		default:
			// Buffer full, drop cosmetic event
		}
	default:
		select {
		case r.events <- evt:
		case <-r.done:
		}
	}
}

func (r *ChannelRenderer) Flash(tile int, d time.Duration) { r.send(FlashEvent{Tile: tile, Duration: d}) }
func (r *ChannelRenderer) ShowLevel(level int)             { r.send(LevelEvent{Level: level}) }
func (r *ChannelRenderer) ShowGameOver(label string)       { r.send(GameOverEvent{Label: label}) }
func (r *ChannelRenderer) SetInputEnabled(enabled bool)    { r.send(InputEvent{Enabled: enabled}) }
func (r *ChannelRenderer) ShowShare(link string)           { r.send(ShareEvent{Link: link}) }
func (r *ChannelRenderer) ResetView()                      { r.send(ResetViewEvent{}) }
func (r *ChannelRenderer) SetRotating(on bool)             { r.send(RotateEvent{On: on}) }

func (r *ChannelRenderer) ArrangeTiles(order []int) {
	r.send(ArrangeEvent{Order: append([]int(nil), order...)})
}

func (r *ChannelRenderer) Distract(kind core.Distraction, d time.Duration) {
	r.send(DistractEvent{Kind: kind, Duration: d})
}

// NopRenderer ignores every intent.
type NopRenderer struct{}

func (NopRenderer) Flash(int, time.Duration)                 {}
func (NopRenderer) ShowLevel(int)                            {}
func (NopRenderer) ShowGameOver(string)                      {}
func (NopRenderer) SetInputEnabled(bool)                     {}
func (NopRenderer) ShowShare(string)                         {}
func (NopRenderer) ResetView()                               {}
func (NopRenderer) ArrangeTiles([]int)                       {}
func (NopRenderer) SetRotating(bool)                         {}
func (NopRenderer) Distract(core.Distraction, time.Duration) {}
