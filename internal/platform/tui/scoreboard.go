package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-simon/internal/scoreboard"
	"github.com/vovakirdan/tui-simon/internal/storage"
)

// Scoreboard layout constants
const (
	historyLimit = 20 // Recent games shown on the history tab
)

// HistorySource lists finished games. Implemented by *storage.Store.
type HistorySource interface {
	RecentGames(limit int) ([]storage.GameRecord, error)
}

// scoreboardTab is the table currently shown.
type scoreboardTab int

const (
	tabTop scoreboardTab = iota
	tabHistory
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Clear   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "top 5 / history"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear scores"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	board     *scoreboard.Board
	history   HistorySource // Optional, can be nil
	tab       scoreboardTab
	available bool
	scores    []scoreboard.Entry
	games     []storage.GameRecord
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(board *scoreboard.Board, history HistorySource, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		board:   board,
		history: history,
		keys:    DefaultScoreboardKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}

	m.load()
	return m
}

// columns returns the table columns for the current tab.
func (m *ScoreboardModel) columns() []table.Column {
	if m.tab == tabHistory {
		return []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Seed", Width: 15},
			{Title: "Modes", Width: 26},
			{Title: "Played", Width: 18},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Level", Width: 6},
		{Title: "Modes", Width: 26},
		{Title: "Date", Width: 22},
	}
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable(rows []table.Row) table.Model {
	height := len(rows) + 1
	if maxHeight := m.height - 10; maxHeight > 3 && height > maxHeight {
		height = maxHeight
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the active tab's data and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.loadErr = nil

	var rows []table.Row
	switch m.tab {
	case tabTop:
		m.available = m.board.Available()
		m.scores, m.loadErr = m.board.List()
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Level),
				s.Modes.String(),
				s.Date,
			})
		}

	case tabHistory:
		m.games = nil
		if m.history != nil {
			m.games, m.loadErr = m.history.RecentGames(historyLimit)
		}
		for _, g := range m.games {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", g.Level),
				fmt.Sprintf("%d", g.Seed),
				g.Modes.String(),
				g.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	}

	m.table = m.createTable(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			if m.tab == tabTop {
				m.tab = tabHistory
			} else {
				m.tab = tabTop
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.tab == tabTop {
				m.loadErr = m.board.Clear()
				if m.loadErr == nil {
					m.load()
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "TOP 5"
	if m.tab == tabHistory {
		title = "RECENT GAMES"
	}
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerBlock(boxStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if m.loadErr != nil {
		b.WriteString(centerText(errorStyle.Render(m.loadErr.Error()), m.width))
		b.WriteString("\n")
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch m.tab {
	case tabTop:
		if !m.available {
			return emptyStyle.Render(scoreboard.UnavailableMessage)
		}
		if len(m.scores) == 0 {
			return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a top score!")
		}
	case tabHistory:
		if m.history == nil {
			return emptyStyle.Render("Game history needs a scores database.")
		}
		if len(m.games) == 0 {
			return emptyStyle.Render("No games played yet.")
		}
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
