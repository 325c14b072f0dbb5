// Package tui provides the Bubble Tea front end for Simon.
// It renders session intents, maps keys to moves and runs the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-simon/internal/simon"
)

// animationRate is how often flashes expire and the board rotates (Hz).
const animationRate = 20

// TickMsg is sent to advance animations.
type TickMsg time.Time

// EventMsg carries one intent from the session.
type EventMsg struct {
	Event  simon.Event
	source *simon.ChannelRenderer
}

// eventsClosedMsg reports that the renderer was closed.
type eventsClosedMsg struct{}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForEvent blocks until the renderer emits the next intent.
func waitForEvent(r *simon.ChannelRenderer) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-r.Events():
			return EventMsg{Event: evt, source: r}
		case <-r.Done():
			return eventsClosedMsg{}
		}
	}
}
