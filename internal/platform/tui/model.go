package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-simon/internal/core"
	"github.com/vovakirdan/tui-simon/internal/scoreboard"
	"github.com/vovakirdan/tui-simon/internal/share"
	"github.com/vovakirdan/tui-simon/internal/simon"
)

// ticksPerQuarterTurn is how many animation ticks a rotating board holds
// each orientation.
const ticksPerQuarterTurn = animationRate * 2

// GameOptions configures a game screen.
type GameOptions struct {
	Config     simon.Config
	LevelStart int
	Modes      core.Modes
	Shared     *share.State // Replay this shared game instead of a fresh one
	Board      *scoreboard.Board
	Saver      simon.ResultSaver
	Logger     *log.Logger
	Seed       int64 // Non-zero fixes the seed of unshared games
	Width      int
	Height     int
}

// resultMsg delivers the finished game's outcome after game over.
type resultMsg struct {
	result *simon.Result
}

// GameModel is the Bubble Tea model for one Simon board. It owns a
// controller and renders the intents it emits.
type GameModel struct {
	opts       GameOptions
	controller *simon.Controller
	renderer   *simon.ChannelRenderer
	keys       GameKeyMap
	help       help.Model

	order         []int
	lit           map[int]time.Time // tile -> flash end
	level         int
	label         string
	link          string
	rank          int
	inputEnabled  bool
	rotating      bool
	rotation      int
	ticks         int
	distraction   core.Distraction
	distractUntil time.Time
	gameOver      bool

	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game screen and starts its controller.
func NewGameModel(opts GameOptions) GameModel {
	renderer := simon.NewChannelRenderer(256)

	deps := simon.Deps{
		Renderer: renderer,
		Board:    opts.Board,
		Saver:    opts.Saver,
		Logger:   opts.Logger,
	}
	if opts.Seed != 0 {
		seed := opts.Seed
		deps.NewSeed = func() int64 { return seed }
	}

	controller := simon.NewController(opts.Config, deps)
	controller.Start()

	h := help.New()
	h.ShowAll = false

	return GameModel{
		opts:       opts,
		controller: controller,
		renderer:   renderer,
		keys:       DefaultGameKeyMap(),
		help:       h,
		order:      core.IdentityOrder(),
		lit:        make(map[int]time.Time),
		level:      opts.LevelStart,
		width:      opts.Width,
		height:     opts.Height,
	}
}

// Init starts the first game and the animation loop.
func (m GameModel) Init() tea.Cmd {
	m.startGame()
	return tea.Batch(waitForEvent(m.renderer), tickCmd(animationRate))
}

func (m *GameModel) startGame() {
	if m.opts.Shared != nil {
		m.controller.Send(simon.StartSharedCmd{State: *m.opts.Shared})
		return
	}
	m.controller.Send(simon.StartCmd{LevelStart: m.opts.LevelStart, Modes: m.opts.Modes})
}

// Close stops the controller. Safe to call more than once.
func (m GameModel) Close() {
	m.controller.Stop()
	m.renderer.Close()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case EventMsg:
		if msg.source != m.renderer {
			return m, nil // From a closed game
		}
		cmd := m.applyEvent(msg.Event)
		return m, tea.Batch(cmd, waitForEvent(m.renderer))

	case resultMsg:
		if msg.result != nil {
			m.rank = msg.result.Rank
		}
		return m, nil

	case TickMsg:
		m.handleTick(time.Time(msg))
		return m, tickCmd(animationRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		m.Close()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if m.gameOver {
			m.resetView()
			m.startGame()
		}
		return m, nil
	}

	// The session decides whether the move counts.
	if tile, ok := m.keys.TileForKey(msg); ok {
		m.controller.Send(simon.MoveCmd{Tile: tile})
	}
	return m, nil
}

func (m *GameModel) resetView() {
	m.gameOver = false
	m.label = ""
	m.link = ""
	m.rank = 0
	m.order = core.IdentityOrder()
	clear(m.lit)
}

// applyEvent updates the view from one session intent.
func (m *GameModel) applyEvent(evt simon.Event) tea.Cmd {
	now := time.Now()

	switch e := evt.(type) {
	case simon.FlashEvent:
		m.lit[e.Tile] = now.Add(e.Duration)
	case simon.LevelEvent:
		m.level = e.Level
		m.gameOver = false
		m.label = ""
	case simon.InputEvent:
		m.inputEnabled = e.Enabled
	case simon.GameOverEvent:
		m.gameOver = true
		m.label = e.Label
		return m.fetchResult()
	case simon.ShareEvent:
		m.link = e.Link
	case simon.ResetViewEvent:
		// Shared parameters are dropped; the next game is a normal one.
		m.opts.Shared = nil
	case simon.ArrangeEvent:
		m.order = e.Order
	case simon.RotateEvent:
		m.rotating = e.On
		if !e.On {
			m.rotation = 0
		}
	case simon.DistractEvent:
		m.distraction = e.Kind
		m.distractUntil = now.Add(e.Duration)
	}
	return nil
}

func (m GameModel) fetchResult() tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		snap, ok := controller.Snapshot()
		if !ok {
			return resultMsg{}
		}
		return resultMsg{result: snap.Result}
	}
}

// handleTick expires flashes and turns a rotating board.
func (m *GameModel) handleTick(now time.Time) {
	for tile, until := range m.lit {
		if !now.Before(until) {
			delete(m.lit, tile)
		}
	}

	if m.rotating {
		m.ticks++
		if m.ticks%ticksPerQuarterTurn == 0 {
			m.rotation = (m.rotation + 1) % 4
		}
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	now := time.Now()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S I M O N"), m.width))
	b.WriteString("\n")

	modes := m.opts.Modes
	status := fmt.Sprintf("Level %d", m.level)
	if m.opts.Shared != nil {
		modes = m.opts.Shared.Modes
		status += "  (shared game)"
	}
	status += "  |  " + modes.String()
	b.WriteString(centerText(dimStyle.Render(status), m.width))
	b.WriteString("\n\n")

	lit := make(map[int]bool, len(m.lit))
	for tile, until := range m.lit {
		if now.Before(until) {
			lit[tile] = true
		}
	}
	board := RenderBoard(BoardView{
		Order:    m.order,
		Lit:      lit,
		Rotation: m.rotation,
		Disabled: !m.inputEnabled && !m.gameOver,
	})
	b.WriteString(centerBlock(board, m.width))
	b.WriteString("\n\n")

	if now.Before(m.distractUntil) {
		b.WriteString(centerText(errorStyle.Render(distractionBanner(m.distraction)), m.width))
		b.WriteString("\n")
	}

	switch {
	case m.gameOver:
		b.WriteString(centerText(titleStyle.Render(m.label), m.width))
		b.WriteString("\n")
		if m.rank > 0 {
			b.WriteString(centerText(labelStyle.Render(fmt.Sprintf("New top score, rank #%d", m.rank)), m.width))
			b.WriteString("\n")
		}
		if m.link != "" {
			b.WriteString(centerText(labelStyle.Render("Share this game:"), m.width))
			b.WriteString("\n")
			b.WriteString(centerText(shareStyle.Render(m.link), m.width))
			b.WriteString("\n")
		}
	case m.inputEnabled:
		b.WriteString(centerText(labelStyle.Render("Your turn"), m.width))
		b.WriteString("\n")
	default:
		b.WriteString(centerText(dimStyle.Render("Watch..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
