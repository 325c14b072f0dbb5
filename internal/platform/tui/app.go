package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-simon/internal/config"
	"github.com/vovakirdan/tui-simon/internal/scoreboard"
	"github.com/vovakirdan/tui-simon/internal/share"
	"github.com/vovakirdan/tui-simon/internal/simon"
	"github.com/vovakirdan/tui-simon/internal/storage"
)

// AppOptions configures the full Simon front end.
type AppOptions struct {
	Config  config.SimonConfig
	Speed   config.SpeedPreset
	Store   *storage.Store // Optional; without it scores live in memory
	Shared  *share.State   // Jump straight into this shared game
	PlayNow bool           // Skip the menu and start a game
	Seed    int64
	Logger  *log.Logger
	Width   int
	Height  int
}

// activeGame tracks the running game so it can be stopped from outside the
// Bubble Tea loop, e.g. when an SSH client disconnects.
type activeGame struct {
	mu   sync.Mutex
	game *GameModel
}

func (a *activeGame) set(g *GameModel) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.game = g
}

func (a *activeGame) close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.game != nil {
		a.game.Close()
		a.game = nil
	}
}

// AppModel manages the full flow: menu -> game -> menu, and the scoreboard.
// This is the top-level model for local play and SSH sessions.
type AppModel struct {
	opts       AppOptions
	board      *scoreboard.Board
	history    HistorySource
	menu       MenuModel
	gameModel  *GameModel
	scoreModel *ScoreboardModel
	active     *activeGame
	width      int
	height     int
	quitting   bool
}

// NewAppModel creates a new app model.
func NewAppModel(opts AppOptions) AppModel {
	m := AppModel{
		opts:   opts,
		menu:   NewMenuModel(opts.Config.Modes, opts.Speed, opts.Width, opts.Height),
		active: &activeGame{},
		width:  opts.Width,
		height: opts.Height,
	}

	if opts.Store != nil {
		m.board = opts.Store.Board()
		m.history = opts.Store
	} else {
		m.board = scoreboard.New(scoreboard.NewMemoryStore())
	}

	if opts.PlayNow || opts.Shared != nil {
		game := m.newGame(opts.Shared)
		m.gameModel = &game
	}

	return m
}

// newGame builds a game screen from the current menu choices.
func (m AppModel) newGame(shared *share.State) GameModel {
	cfg := m.opts.Config
	config.ApplySpeedPreset(&cfg, m.menu.Speed())
	cfg.Modes = m.menu.Modes()

	var saver simon.ResultSaver
	if m.opts.Store != nil {
		saver = m.opts.Store
	}

	sessionCfg := cfg.ToSession()
	game := NewGameModel(GameOptions{
		Config:     sessionCfg,
		LevelStart: sessionCfg.LevelStart,
		Modes:      cfg.Modes,
		Shared:     shared,
		Board:      m.board,
		Saver:      saver,
		Logger:     m.opts.Logger,
		Seed:       m.opts.Seed,
		Width:      m.width,
		Height:     m.height,
	})
	m.active.set(&game)
	return game
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	if m.gameModel != nil {
		return m.gameModel.Init()
	}
	return m.menu.Init()
}

// Close stops any running game.
func (m AppModel) Close() {
	m.active.close()
}

// Update handles messages for the app.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.menu.width = wsm.Width
		m.menu.height = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreModel != nil:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		scores := NewScoreboardModel(m.board, m.history, m.width, m.height)
		m.scoreModel = &scores
		m.resetMenu()
		return m, scores.Init()
	}

	if m.menu.WantsPlay() {
		game := m.newGame(nil)
		m.gameModel = &game
		m.resetMenu()
		return m, game.Init()
	}

	return m, cmd
}

// resetMenu clears one-shot menu choices but keeps modes, speed and cursor.
func (m *AppModel) resetMenu() {
	m.menu.play = false
	m.menu.openScoreboard = false
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.active.set(nil)
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.active.set(nil)
		m.gameModel = nil
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreModel.Update(msg)
	if scoreModel, ok := newModel.(ScoreboardModel); ok {
		m.scoreModel = &scoreModel
	}

	if m.scoreModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreModel.IsGoingBack() {
		m.scoreModel = nil
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreModel != nil:
		return m.scoreModel.View()
	}
	return m.menu.View()
}

// Run starts the Bubble Tea program with the app model.
func Run(opts AppOptions) error {
	model := NewAppModel(opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
