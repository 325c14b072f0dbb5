package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-simon/internal/core"
)

// Tile box size in cells.
const (
	tileWidth  = 12
	tileHeight = 3
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	shareStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// colorFor converts a tile color to a lipgloss color.
func colorFor(c core.Color) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(int(c)))
}

// BoardView is everything needed to draw the tiles.
type BoardView struct {
	Order    []int        // Tile index at each board position
	Lit      map[int]bool // Tiles currently flashing
	Rotation int          // Quarter turns applied to the layout
	Disabled bool         // Input is off; tiles are drawn dimmed
}

// renderTile draws one tile box.
func renderTile(tile int, lit, disabled bool) string {
	t := core.Tiles[tile]
	style := lipgloss.NewStyle().
		Width(tileWidth).
		Height(tileHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.RoundedBorder())

	switch {
	case lit:
		style = style.
			Background(colorFor(t.Color)).
			Foreground(lipgloss.Color("0")).
			BorderForeground(colorFor(t.Color)).
			Bold(true)
	case disabled:
		style = style.
			Foreground(lipgloss.Color("240")).
			BorderForeground(lipgloss.Color("240"))
	default:
		style = style.
			Foreground(colorFor(t.Color)).
			BorderForeground(colorFor(t.Color))
	}

	return style.Render(strconv.Itoa(tile+1) + " " + t.Name)
}

// RenderBoard lays the tiles out as a 3x2 grid, or 2x3 on odd quarter turns.
// Half turns reverse the order so the board appears upside down.
func RenderBoard(v BoardView) string {
	order := v.Order
	if len(order) != core.TileCount {
		order = core.IdentityOrder()
	}

	turns := ((v.Rotation % 4) + 4) % 4
	positions := append([]int(nil), order...)
	if turns >= 2 {
		for i, j := 0, len(positions)-1; i < j; i, j = i+1, j-1 {
			positions[i], positions[j] = positions[j], positions[i]
		}
	}

	cols := 3
	if turns%2 == 1 {
		cols = 2
	}

	var rows []string
	for start := 0; start < len(positions); start += cols {
		end := min(start+cols, len(positions))
		cells := make([]string, 0, cols)
		for _, tile := range positions[start:end] {
			cells = append(cells, renderTile(tile, v.Lit[tile], v.Disabled))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

// distractionBanner is the textual stand-in for a distraction effect.
func distractionBanner(d core.Distraction) string {
	switch d {
	case core.FadeBackground:
		return "~ the lights are fading ~"
	case core.NyanCat:
		return "=^.^= nyan nyan nyan =^.^="
	case core.Fireworks:
		return "* . * BOOM * . *"
	case core.TrollTrail:
		return "u mad? u mad? u mad?"
	case core.Genius:
		return "GENIUS!!! (not really)"
	case core.Jackie:
		return "(o_O) wait what"
	default:
		return "..."
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// centerBlock centers a multi-line block horizontally.
func centerBlock(block string, width int) string {
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
