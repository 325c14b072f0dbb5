package simon

import (
	"sync"

	"github.com/vovakirdan/tui-simon/internal/core"
	"github.com/vovakirdan/tui-simon/internal/scoreboard"
	"github.com/vovakirdan/tui-simon/internal/share"
)

// Command is a request for the controller's session.
type Command interface {
	simonCommand()
}

// StartCmd starts a fresh game.
type StartCmd struct {
	LevelStart int
	Modes      core.Modes
}

func (StartCmd) simonCommand() {}

// StartSharedCmd replays a shared game.
type StartSharedCmd struct {
	State share.State
}

func (StartSharedCmd) simonCommand() {}

// MoveCmd presses a tile.
type MoveCmd struct {
	Tile int
}

func (MoveCmd) simonCommand() {}

// StopCmd abandons the running game.
type StopCmd struct{}

func (StopCmd) simonCommand() {}

// ClearScoresCmd empties the score board.
type ClearScoresCmd struct{}

func (ClearScoresCmd) simonCommand() {}

// runCmd carries a fired timer callback back onto the controller goroutine.
type runCmd struct {
	fn func()
}

func (runCmd) simonCommand() {}

type snapshotCmd struct {
	reply chan Snapshot
}

func (snapshotCmd) simonCommand() {}

// Snapshot is a consistent view of the controller's session.
type Snapshot struct {
	State           State
	Result          *Result
	Scores          []scoreboard.Entry
	ScoresAvailable bool
}

// Controller owns a Session and serializes every call to it through one
// goroutine, so UI code on other goroutines can drive it safely.
type Controller struct {
	session *Session

	msgChan  chan Command
	done     chan struct{}
	stopOnce sync.Once
}

// NewController creates a controller. Unless deps carries a scheduler,
// timers run on the wall clock and fire on the controller goroutine.
func NewController(cfg Config, deps Deps) *Controller {
	c := &Controller{
		msgChan: make(chan Command, 256),
		done:    make(chan struct{}),
	}
	if deps.Scheduler == nil {
		deps.Scheduler = NewTimerScheduler(func(fn func()) {
			c.Send(runCmd{fn: fn})
		})
	}
	c.session = NewSession(cfg, deps)
	return c
}

// Start begins processing commands.
func (c *Controller) Start() {
	go c.processMessages()
}

// Stop shuts the controller down. Pending timers are dropped.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}

// Done is closed once the controller stops.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Send queues a command. It returns immediately once the controller stops.
func (c *Controller) Send(cmd Command) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.msgChan <- cmd:
	case <-c.done:
	}
}

// Snapshot returns the current state. The second value is false when the
// controller has stopped.
func (c *Controller) Snapshot() (Snapshot, bool) {
	select {
	case <-c.done:
		return Snapshot{}, false
	default:
	}

	reply := make(chan Snapshot, 1)
	select {
	case c.msgChan <- snapshotCmd{reply: reply}:
	case <-c.done:
		return Snapshot{}, false
	}

	select {
	case snap := <-reply:
		return snap, true
	case <-c.done:
		return Snapshot{}, false
	}
}

func (c *Controller) processMessages() {
	for {
		select {
		case cmd := <-c.msgChan:
			c.handleCommand(cmd)
		case <-c.done:
			c.session.cancelTimers()
			return
		}
	}
}

func (c *Controller) handleCommand(cmd Command) {
	switch m := cmd.(type) {
	case StartCmd:
		c.session.Start(m.LevelStart, m.Modes)
	case StartSharedCmd:
		c.session.StartShared(m.State)
	case MoveCmd:
		c.session.SubmitMove(m.Tile)
	case StopCmd:
		c.session.Stop()
	case ClearScoresCmd:
		if err := c.session.Board().Clear(); err != nil {
			c.session.log.Warn("could not clear scores", "error", err)
		}
	case runCmd:
		m.fn()
	case snapshotCmd:
		m.reply <- c.snapshot()
	}
}

func (c *Controller) snapshot() Snapshot {
	snap := Snapshot{State: c.session.State()}
	if r, ok := c.session.LastResult(); ok {
		snap.Result = &r
	}

	board := c.session.Board()
	snap.ScoresAvailable = board.Available()
	if scores, err := board.List(); err == nil {
		snap.Scores = scores
	} else {
		c.session.log.Warn("could not read scores", "error", err)
	}
	return snap
}
