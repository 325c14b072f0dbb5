package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-simon/internal/core"
	"github.com/vovakirdan/tui-simon/internal/simon"
)

var (
	flagSimLevelMax int
	flagSimMissAt   int
	flagSimQuiet    bool
	flagSimSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a perfect game without a screen",
	Long: `Run a game on a virtual clock, answering every level correctly, and
print what the board would show. Useful to check timing and patterns.

Examples:
  simon simulate --seed 42 --level-max 5
  simon simulate --seed 42 --level-max 20 --miss-at 7
  simon simulate --seed 42 --level-max 10 --quiet --save`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimLevelMax, "level-max", 10, "Level cap for the run")
	simulateCmd.Flags().IntVar(&flagSimMissAt, "miss-at", 0, "Press a wrong tile on this level (0 = never)")
	simulateCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Only print the result")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the result in the scores database")
}

// textRenderer prints session intents with the virtual time.
type textRenderer struct {
	out   io.Writer
	clock *simon.ManualScheduler
}

func (r textRenderer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, "[%8.3fs] ", r.clock.Now().Seconds())
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r textRenderer) Flash(tile int, d time.Duration) {
	r.printf("flash %-6s for %s", core.Tiles[tile].Name, d)
}
func (r textRenderer) ShowLevel(level int)          { r.printf("level %d", level) }
func (r textRenderer) ShowGameOver(label string)    { r.printf("%s", label) }
func (r textRenderer) SetInputEnabled(enabled bool) {}
func (r textRenderer) ShowShare(link string)        { r.printf("share %s", link) }
func (r textRenderer) ResetView()                   { r.printf("reset view") }
func (r textRenderer) ArrangeTiles(order []int)     { r.printf("arrange %v", order) }
func (r textRenderer) SetRotating(on bool)          { r.printf("rotating %v", on) }
func (r textRenderer) Distract(kind core.Distraction, d time.Duration) {
	r.printf("distraction %s for %s", kind, d)
}

func runSimulate(_ *cobra.Command, _ []string) {
	if flagSimLevelMax < 1 {
		fmt.Fprintln(os.Stderr, "Error: --level-max must be at least 1")
		os.Exit(1)
	}

	cfg := loadConfig()
	cfg.Game.LevelMax = flagSimLevelMax
	sessionCfg := cfg.ToSession()

	clock := simon.NewManualScheduler()
	var renderer simon.Renderer = textRenderer{out: os.Stdout, clock: clock}
	if flagSimQuiet {
		renderer = simon.NopRenderer{}
	}

	deps := simon.Deps{
		Renderer:  renderer,
		Scheduler: clock,
		Logger:    newLogger(os.Stderr, "simon-sim"),
	}
	if flagSeed != 0 {
		seed := flagSeed
		deps.NewSeed = func() int64 { return seed }
	}
	if flagSimSave {
		store := openStore(true)
		defer store.Close()
		deps.Board = store.Board()
		deps.Saver = store
	}

	sess := simon.NewSession(sessionCfg, deps)
	sess.Start(sessionCfg.LevelStart, cfg.Modes)

	for sess.State().Running {
		if !waitForTurn(sess, clock) {
			fmt.Fprintln(os.Stderr, "Error: game stalled before the player's turn")
			os.Exit(1)
		}

		st := sess.State()
		pattern := sess.Pattern()
		for i := 0; i < st.Level && sess.State().Running; i++ {
			tile := pattern[i]
			if st.Level == flagSimMissAt && i == st.Level-1 {
				tile = (tile + 1) % core.TileCount
			}
			sess.SubmitMove(tile)
		}
	}

	result, ok := sess.LastResult()
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: game ended without a result")
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Seed:     %d\n", result.Seed)
	fmt.Printf("Level:    %d of %d\n", result.Level, result.LevelMax)
	fmt.Printf("Won:      %v\n", result.Won)
	fmt.Printf("Duration: %s (virtual)\n", clock.Now())
	if result.Link != "" {
		fmt.Printf("Share:    %s\n", result.Link)
	}
	if result.Rank > 0 {
		fmt.Printf("Rank:     #%d\n", result.Rank)
	}
}

// waitForTurn runs scheduled callbacks until the session accepts input.
func waitForTurn(sess *simon.Session, clock *simon.ManualScheduler) bool {
	for {
		st := sess.State()
		if !st.Running || st.Phase == simon.PhaseRunning {
			return true
		}
		if clock.RunAll(1) == 0 {
			return false
		}
	}
}
