package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit int
	flagHistoryBest  bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent games and stats",
	Long: `List finished games with the seed each was played with, plus totals.

Examples:
  simon history
  simon history --limit 50
  simon history --best`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of games to show")
	historyCmd.Flags().BoolVar(&flagHistoryBest, "best", false, "Order by level instead of date")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the game history")
}

func runHistory(_ *cobra.Command, _ []string) {
	store := openStore(true)
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearGames(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	fetch := store.RecentGames
	if flagHistoryBest {
		fetch = store.BestGames
	}
	games, err := fetch(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		os.Exit(1)
	}

	if len(games) == 0 {
		fmt.Println("No games played yet.")
		return
	}

	fmt.Printf("  %-6s  %-5s  %-20s  %-24s  %s\n", "Result", "Level", "Seed", "Modes", "Played")
	fmt.Printf("  %-6s  %-5s  %-20s  %-24s  %s\n", "------", "-----", "----", "-----", "------")
	for _, g := range games {
		result := "lost"
		if g.Won {
			result = "won"
		}
		fmt.Printf("  %-6s  %-5d  %-20d  %-24s  %s\n",
			result, g.Level, g.Seed, g.Modes.String(), g.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Games: %d  Wins: %d  Best level: %d  Average level: %.1f\n",
		stats.GamesCount, stats.Wins, stats.BestLevel, stats.AvgLevel)
}
