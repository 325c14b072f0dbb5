package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-simon/internal/config"
	"github.com/vovakirdan/tui-simon/internal/core"
)

// MenuItem is one line of the main menu.
type MenuItem int

const (
	MenuPlay MenuItem = iota
	MenuShuffle
	MenuRotate
	MenuDistract
	MenuSpeed
	MenuScores
	MenuQuit
)

var menuItems = []MenuItem{MenuPlay, MenuShuffle, MenuRotate, MenuDistract, MenuSpeed, MenuScores, MenuQuit}

// MenuModel is the Bubble Tea model for the main menu and game options.
type MenuModel struct {
	cursor         int
	width          int
	height         int
	modes          core.Modes
	speed          config.SpeedPreset
	quitting       bool
	play           bool // Set when user starts a game
	openScoreboard bool // True if user picked scores or pressed Tab
}

// NewMenuModel creates a new menu model.
func NewMenuModel(modes core.Modes, speed config.SpeedPreset, width, height int) MenuModel {
	if speed == "" {
		speed = config.SpeedNormal
	}
	return MenuModel{
		width:  width,
		height: height,
		modes:  modes,
		speed:  speed,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.openScoreboard = true

	case MenuActionSelect:
		m.selectItem(menuItems[m.cursor])
		if m.quitting {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *MenuModel) selectItem(item MenuItem) {
	switch item {
	case MenuPlay:
		m.play = true
	case MenuShuffle:
		m.modes.Shuffle = !m.modes.Shuffle
	case MenuRotate:
		m.modes.Rotate = !m.modes.Rotate
	case MenuDistract:
		m.modes.Distract = !m.modes.Distract
	case MenuSpeed:
		m.speed = nextSpeed(m.speed)
	case MenuScores:
		m.openScoreboard = true
	case MenuQuit:
		m.quitting = true
	}
}

// nextSpeed cycles through the speed presets.
func nextSpeed(current config.SpeedPreset) config.SpeedPreset {
	for i, p := range config.SpeedPresets {
		if p == current {
			return config.SpeedPresets[(i+1)%len(config.SpeedPresets)]
		}
	}
	return config.SpeedNormal
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m MenuModel) itemLabel(item MenuItem) string {
	switch item {
	case MenuPlay:
		return "Start"
	case MenuShuffle:
		return "Shuffle:  " + onOff(m.modes.Shuffle)
	case MenuRotate:
		return "Rotate:   " + onOff(m.modes.Rotate)
	case MenuDistract:
		return "Distract: " + onOff(m.modes.Distract)
	case MenuSpeed:
		return "Speed:    " + string(m.speed)
	case MenuScores:
		return "Scores"
	case MenuQuit:
		return "Quit"
	}
	return ""
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S I M O N  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Repeat the pattern. It gets longer, and faster."), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-16s", cursor, m.itemLabel(item))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select/Toggle  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Modes returns the selected game modes.
func (m MenuModel) Modes() core.Modes {
	return m.modes
}

// Speed returns the selected speed preset.
func (m MenuModel) Speed() config.SpeedPreset {
	return m.speed
}

// WantsPlay returns true if user started a game.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
