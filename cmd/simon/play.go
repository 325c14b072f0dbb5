package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-simon/internal/config"
	"github.com/vovakirdan/tui-simon/internal/platform/tui"
	"github.com/vovakirdan/tui-simon/internal/share"
)

var (
	flagLevel    int
	flagShuffle  bool
	flagRotate   bool
	flagDistract bool
	flagSpeed    string
	flagShare    string
	flagMenu     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Simon",
	Long: `Start a game of Simon in the terminal.

Controls:
  1-6 or r/g/u/y/p/o - Press a tile
  Enter/Space        - New game (after game over)
  Esc/B              - Back to menu
  Q/Ctrl+C           - Quit

Speed options:
  slow   - 0.75x
  normal - 1x
  fast   - 1.5x
  insane - 2x

Examples:
  simon play
  simon play --menu
  simon play --level 5 --shuffle --rotate
  simon play --speed fast --distract
  simon play --share "http://nickjj.github.com/simon?level=4&modes=false,false,false&seed=42"`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Starting level (default from config)")
	playCmd.Flags().BoolVar(&flagShuffle, "shuffle", false, "Shuffle tiles every level")
	playCmd.Flags().BoolVar(&flagRotate, "rotate", false, "Keep the board rotating")
	playCmd.Flags().BoolVar(&flagDistract, "distract", false, "Play random distractions")
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, insane")
	playCmd.Flags().StringVar(&flagShare, "share", "", "Replay a shared game (link or query)")
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Open the options menu instead of starting right away")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()

	speed, err := config.ParseSpeedPreset(flagSpeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagLevel > 0 {
		cfg.Game.LevelStart = flagLevel
	}
	cfg.Modes.Shuffle = cfg.Modes.Shuffle || flagShuffle
	cfg.Modes.Rotate = cfg.Modes.Rotate || flagRotate
	cfg.Modes.Distract = cfg.Modes.Distract || flagDistract

	var shared *share.State
	if flagShare != "" {
		st, decodeErr := share.Decode(flagShare)
		if decodeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v, starting a normal game\n", decodeErr)
		} else {
			shared = &st
		}
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger, closeLog := fileLogger("simon")
	defer closeLog()

	// Open score storage
	store := openStore(false)

	runErr := tui.Run(tui.AppOptions{
		Config:  cfg,
		Speed:   speed,
		Store:   store,
		Shared:  shared,
		PlayNow: !flagMenu,
		Seed:    flagSeed,
		Logger:  logger,
		Width:   width,
		Height:  height,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
