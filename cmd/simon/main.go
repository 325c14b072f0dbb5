// simon is a terminal Simon memory game.
//
// Usage:
//
//	simon play               - Play in the terminal
//	simon serve              - Start SSH server for remote play (and optional HTTP API)
//	simon scores             - Show the top 5
//	simon history            - Show recent games and stats
//	simon share encode|decode - Build or read share links
//	simon pattern            - Print the tile pattern for a seed
//	simon simulate           - Play a perfect game headlessly
//
// Global flags:
//
//	--seed <value>      - Fix the pattern seed (0 = random based on time)
//	--db <path>         - Set database path (default: ~/.simon/scores.db)
//	--config <path>     - Custom config YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-simon/internal/config"
	"github.com/vovakirdan/tui-simon/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "simon",
	Short: "Simon - repeat the pattern in your terminal",
	Long: `Simon is the classic memory game: watch the tiles flash, then repeat
the pattern. Every level adds a tile and plays a little faster.

Available commands:
  play      - Play in the terminal
  serve     - Start SSH server for remote play
  scores    - View the top 5
  history   - View recent games
  share     - Encode or decode share links
  pattern   - Print the pattern for a seed
  simulate  - Play a perfect game without a screen

Examples:
  simon play
  simon play --shuffle --speed fast
  simon play --share "level=4&modes=false,false,false&seed=42"
  simon serve --ssh :2222 --http :8080
  simon scores`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Pattern seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.simon/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(patternCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger logs to ~/.simon/simon.log so the TUI screen stays clean.
// Falls back to discarding logs when the file cannot be opened.
func fileLogger(prefix string) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}

	dir := filepath.Join(home, ".simon")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, "simon.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	return newLogger(f, prefix), func() { f.Close() }
}

// loadConfig loads the game config or exits.
func loadConfig() config.SimonConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openStore opens the scores database. When required is false a failure is
// a warning and the caller continues without storage.
func openStore(required bool) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		if required {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
