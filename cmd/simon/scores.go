package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-simon/internal/scoreboard"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the top 5",
	Long: `Display the top 5 levels reached.

Examples:
  simon scores
  simon scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Clear the top 5")
}

func runScores(_ *cobra.Command, _ []string) {
	store := openStore(true)
	defer store.Close()

	board := store.Board()

	if flagClearScores {
		if err := board.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scores cleared.")
		return
	}

	if !board.Available() {
		fmt.Println(scoreboard.UnavailableMessage)
		return
	}

	scores, err := board.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Top 5")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'simon play' to set the first top score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-5s  %-24s  %s\n", "Rank", "Level", "Modes", "Date")
	fmt.Printf("  %-4s  %-5s  %-24s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-5d  %-24s  %s\n", i+1, entry.Level, entry.Modes.String(), entry.Date)
	}
}
