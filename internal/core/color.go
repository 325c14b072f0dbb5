package core

// Color is the display color of a tile.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Tile colors, in tile index order.
const (
	ColorRed    Color = 160
	ColorGreen  Color = 34
	ColorBlue   Color = 33
	ColorYellow Color = 220
	ColorPurple Color = 129
	ColorOrange Color = 208
)

// TileCount is the number of tiles on the board.
const TileCount = 6

// Tile describes one colored tile of the board.
type Tile struct {
	Index int
	Name  string
	Color Color
}

// Tiles lists the board tiles; the position in the slice is the tile index
// the pattern refers to.
var Tiles = [TileCount]Tile{
	{Index: 0, Name: "red", Color: ColorRed},
	{Index: 1, Name: "green", Color: ColorGreen},
	{Index: 2, Name: "blue", Color: ColorBlue},
	{Index: 3, Name: "yellow", Color: ColorYellow},
	{Index: 4, Name: "purple", Color: ColorPurple},
	{Index: 5, Name: "orange", Color: ColorOrange},
}

// ValidTile reports whether index names a board tile.
func ValidTile(index int) bool {
	return index >= 0 && index < TileCount
}

// IdentityOrder returns the unshuffled tile order.
func IdentityOrder() []int {
	order := make([]int, TileCount)
	for i := range order {
		order[i] = i
	}
	return order
}
