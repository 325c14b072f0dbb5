package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-simon/internal/core"
)

// GameKeyMap defines the key bindings while playing.
type GameKeyMap struct {
	Tiles   [core.TileCount]key.Binding
	Restart key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tiles[0], k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Tiles[:],
		{k.Restart, k.Back, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings. Tiles are pressed with
// 1-6 or with the first letter of their color.
func DefaultGameKeyMap() GameKeyMap {
	var tiles [core.TileCount]key.Binding
	letters := [core.TileCount]string{"r", "g", "u", "y", "p", "o"}
	for i, t := range core.Tiles {
		digit := string(rune('1' + i))
		tiles[i] = key.NewBinding(
			key.WithKeys(digit, letters[i]),
			key.WithHelp(digit+"/"+letters[i], t.Name),
		)
	}
	tiles[0].SetHelp("1-6", "press tile")

	return GameKeyMap{
		Tiles: tiles,
		Restart: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "new game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// TileForKey returns the tile a key presses.
func (k GameKeyMap) TileForKey(msg tea.KeyMsg) (int, bool) {
	for i, b := range k.Tiles {
		if key.Matches(msg, b) {
			return i, true
		}
	}
	return 0, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
