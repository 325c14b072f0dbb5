package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-simon/internal/core"
	"github.com/vovakirdan/tui-simon/internal/simon"
)

var (
	flagPatternLevels int
	flagPatternNames  bool
)

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Print the tile pattern for a seed",
	Long: `Print the first levels of the pattern a seed produces. The same seed
always gives the same pattern, here and in shared games.

Examples:
  simon pattern --seed 42
  simon pattern --seed 42 --levels 20 --names`,
	Args: cobra.NoArgs,
	Run:  runPattern,
}

func init() {
	patternCmd.Flags().IntVar(&flagPatternLevels, "levels", 10, "Number of tiles to print")
	patternCmd.Flags().BoolVar(&flagPatternNames, "names", false, "Print color names instead of tile numbers")
}

func runPattern(_ *cobra.Command, _ []string) {
	if flagPatternLevels < 1 {
		fmt.Fprintln(os.Stderr, "Error: --levels must be at least 1")
		os.Exit(1)
	}

	pattern := simon.GeneratePattern(flagSeed, flagPatternLevels)
	parts := make([]string, len(pattern))
	for i, tile := range pattern {
		if flagPatternNames {
			parts[i] = core.Tiles[tile].Name
		} else {
			parts[i] = fmt.Sprintf("%d", tile+1)
		}
	}

	fmt.Printf("Seed %d:\n", flagSeed)
	fmt.Println(strings.Join(parts, " "))
}
