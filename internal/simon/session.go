package simon

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-simon/internal/core"
	"github.com/vovakirdan/tui-simon/internal/scoreboard"
	"github.com/vovakirdan/tui-simon/internal/share"
)

// Phase is the session's position in the game lifecycle.
type Phase int

const (
	PhaseIdle       Phase = iota // No game played yet
	PhaseRunning                 // Waiting for the player's moves
	PhaseTransition              // Level cleared, next replay pending
	PhaseReplaying               // Showing the pattern, input ignored
	PhaseGameOver                // Finished, input disabled until next start
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseTransition:
		return "Transition"
	case PhaseReplaying:
		return "Replaying"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// DistractConfig controls distract mode.
type DistractConfig struct {
	Chance   float64       // Probability that an interval tick plays a distraction
	MinDelay time.Duration // Shortest interval between ticks
	MaxDelay time.Duration // Interval upper bound (exclusive)
}

// Config contains the game rules for a session.
type Config struct {
	LevelStart   int
	LevelMax     int
	Base         BaseTiming
	Scale        float64 // Global speed multiplier, 2 = twice as fast
	Distract     DistractConfig
	ShareBaseURL string
}

// DefaultConfig returns the classic rules.
func DefaultConfig() Config {
	return Config{
		LevelStart: 1,
		LevelMax:   100,
		Base:       DefaultBaseTiming(),
		Scale:      1,
		Distract: DistractConfig{
			Chance:   0.75,
			MinDelay: time.Second,
			MaxDelay: 4 * time.Second,
		},
		ShareBaseURL: "http://nickjj.github.com/simon",
	}
}

// Result describes a finished game.
type Result struct {
	Level      int
	LevelStart int
	LevelMax   int
	Won        bool
	Seed       int64
	Modes      core.Modes
	Shared     bool   // Replayed from a share link, not scored
	Label      string // Text shown on the game over screen
	Link       string // Share link, empty when level <= 1 or shared
	Rank       int    // Board position, 0 if not ranked
	EndedAt    time.Time
}

// ResultSaver records finished games beyond the top-5 board.
// This allows the session to keep a history without depending on storage.
type ResultSaver interface {
	SaveResult(result Result) error
}

// Deps are the collaborators a session talks to.
// Only Renderer and Scheduler are required.
type Deps struct {
	Renderer  Renderer
	Scheduler Scheduler
	Board     *scoreboard.Board
	Saver     ResultSaver
	Logger    *log.Logger
	Now       func() time.Time
	NewSeed   func() int64 // Seed source for unshared games; defaults to wall clock millis
	Rand      *rand.Rand   // Shuffle and distraction randomness
}

// State is a read-only snapshot of a session.
type State struct {
	Phase           Phase
	Level           int
	LevelMax        int
	Turn            int
	ReplayProgress  int
	Running         bool
	Seed            int64
	PlayedFromShare bool
	Modes           core.Modes
	Timing          Timing
}

// Session is the game state machine. It is not safe for concurrent use;
// every call, including scheduled callbacks, must come from one goroutine
// (see Controller).
type Session struct {
	cfg  Config
	deps Deps
	log  *log.Logger
	rng  *rand.Rand

	phase           Phase
	levelStart      int
	levelMax        int
	level           int
	turn            int
	replayProgress  int
	running         bool
	seed            int64
	playedFromShare bool
	modes           core.Modes
	pattern         []int
	timing          Timing

	// gen invalidates callbacks scheduled for an earlier game.
	gen uint64

	replayTimer   Handle
	shuffleTimer  Handle
	distractTimer Handle
	distractEnd   Handle
	distracting   bool
	distractEvery time.Duration
	shuffled      bool
	rotating      bool

	lastResult *Result
}

// NewSession creates an idle session.
func NewSession(cfg Config, deps Deps) *Session {
	if cfg.LevelMax <= 0 {
		cfg.LevelMax = DefaultConfig().LevelMax
	}
	if cfg.LevelStart <= 0 {
		cfg.LevelStart = 1
	}
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	if deps.Renderer == nil {
		deps.Renderer = NopRenderer{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = NewManualScheduler()
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewSeed == nil {
		now := deps.Now
		deps.NewSeed = func() int64 { return now().UnixMilli() }
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(uint64(deps.Now().UnixNano()), 0))
	}

	return &Session{
		cfg:      cfg,
		deps:     deps,
		log:      deps.Logger,
		rng:      deps.Rand,
		phase:    PhaseIdle,
		levelMax: cfg.LevelMax,
		level:    cfg.LevelStart,
		timing:   cfg.Base.Unscaled(),
	}
}

// Start begins a new game with a fresh seed. A game already in progress is
// abandoned without scoring.
func (s *Session) Start(levelStart int, modes core.Modes) {
	s.begin(levelStart, modes, s.deps.NewSeed(), false)
}

// MaxSharedLevel bounds how far a shared link may raise the level cap.
const MaxSharedLevel = 1000

// StartShared replays a shared game. Shared games are never scored.
// A shared level beyond the cap raises the cap for this game, up to
// MaxSharedLevel.
func (s *Session) StartShared(st share.State) {
	s.begin(st.Level, st.Modes, st.Seed, true)
}

func (s *Session) begin(levelStart int, modes core.Modes, seed int64, shared bool) {
	s.cancelTimers()
	s.gen++
	s.restoreBoard()

	s.levelMax = s.cfg.LevelMax
	if shared && levelStart > s.levelMax {
		s.levelMax = min(levelStart, max(MaxSharedLevel, s.cfg.LevelMax))
	}
	if levelStart < 1 {
		levelStart = 1
	}
	if levelStart > s.levelMax {
		levelStart = s.levelMax
	}

	s.seed = seed
	s.playedFromShare = shared
	s.modes = modes
	s.levelStart = levelStart
	s.running = true
	s.lastResult = nil

	s.log.Debug("game started",
		"seed", seed,
		"level", levelStart,
		"level_max", s.levelMax,
		"modes", modes.String(),
		"shared", shared,
	)

	s.deps.Renderer.ShowLevel(levelStart)
	if modes.Rotate {
		s.rotating = true
		s.deps.Renderer.SetRotating(true)
	}
	if modes.Distract {
		s.startDistractions()
	}

	s.pattern = GeneratePattern(seed, s.levelMax)
	s.level = levelStart
	s.turn = 0
	s.replayProgress = 0
	s.timing = ComputeTiming(s.level, s.cfg.Base, s.cfg.Scale, 1)

	s.beginReplay()
}

// SubmitMove handles a tile press. It is ignored unless the session is
// waiting for input. Returns true when the move was accepted for judging.
func (s *Session) SubmitMove(tile int) bool {
	if !s.running || s.phase != PhaseRunning || !core.ValidTile(tile) {
		return false
	}

	s.deps.Renderer.Flash(tile, s.timing.FlashColor)

	if s.pattern[s.turn] == tile {
		s.turn++
		if s.turn == s.level {
			s.levelUp()
		}
		return true
	}

	s.log.Debug("wrong move", "level", s.level, "turn", s.turn, "expected", s.pattern[s.turn], "got", tile)
	s.gameOver()
	return true
}

// Stop abandons the current game without scoring it.
func (s *Session) Stop() {
	if !s.running {
		return
	}
	s.cancelTimers()
	s.gen++
	s.running = false
	s.phase = PhaseIdle
	s.timing = s.cfg.Base.Unscaled()
	s.deps.Renderer.SetInputEnabled(false)
	s.restoreBoard()
	s.log.Debug("game abandoned", "level", s.level)
}

// levelUp advances after a fully repeated level. Clearing the last level
// wins the game.
func (s *Session) levelUp() {
	if s.level >= s.levelMax {
		s.gameOver()
		return
	}

	s.level++
	s.turn = 0
	s.replayProgress = 0
	s.timing = ComputeTiming(s.level, s.cfg.Base, s.cfg.Scale, 1)

	s.log.Debug("level up", "level", s.level, "scale_speed", s.timing.ScaleSpeed)

	s.phase = PhaseTransition
	s.deps.Renderer.SetInputEnabled(false)
	s.deps.Renderer.ShowLevel(s.level)

	if s.modes.Shuffle {
		s.shuffleTimer = s.after(s.timing.FlashColor, s.shuffle)
	}
	s.replayTimer = s.after(s.timing.LevelTransition, s.beginReplay)
}

// beginReplay disables input and shows the pattern from the start.
func (s *Session) beginReplay() {
	s.phase = PhaseReplaying
	s.deps.Renderer.SetInputEnabled(false)
	s.replayStep()
}

// replayStep flashes one pattern entry and schedules the next.
func (s *Session) replayStep() {
	if s.replayProgress >= s.level {
		s.replayTimer = nil
		s.phase = PhaseRunning
		s.deps.Renderer.SetInputEnabled(true)
		return
	}

	s.deps.Renderer.Flash(s.pattern[s.replayProgress], s.timing.FlashColor)
	s.replayProgress++
	s.replayTimer = s.after(s.timing.LevelTransition, s.replayStep)
}

// gameOver ends the game, scores it and offers a share link.
func (s *Session) gameOver() {
	s.cancelTimers()
	s.gen++

	s.running = false
	s.phase = PhaseGameOver
	s.deps.Renderer.SetInputEnabled(false)

	won := s.level >= s.levelMax
	label := fmt.Sprintf("Game over, you made it to level: %d", s.level)
	if won {
		label = fmt.Sprintf("Well done, you hit the level cap of: %d", s.level)
	}
	s.deps.Renderer.ShowGameOver(label)

	s.restoreBoard()
	s.timing = s.cfg.Base.Unscaled()

	result := Result{
		Level:      s.level,
		LevelStart: s.levelStart,
		LevelMax:   s.levelMax,
		Won:        won,
		Seed:       s.seed,
		Modes:      s.modes,
		Shared:     s.playedFromShare,
		Label:      label,
		EndedAt:    s.deps.Now(),
	}

	if s.playedFromShare {
		s.deps.Renderer.ResetView()
	} else {
		result.Rank = s.submitScore(result)

		if s.level > 1 {
			result.Link = share.Link(s.cfg.ShareBaseURL, share.ForResult(s.level, s.modes, s.seed))
			s.deps.Renderer.ShowShare(result.Link)
		}

		if s.deps.Saver != nil {
			if err := s.deps.Saver.SaveResult(result); err != nil {
				s.log.Warn("could not save game history", "error", err)
			}
		}
	}

	s.lastResult = &result
	s.log.Info("game over", "level", s.level, "won", won, "seed", s.seed, "shared", s.playedFromShare, "rank", result.Rank)
}

// submitScore puts the result on the board. Storage problems never end the
// game; they are logged and the result stays unranked.
func (s *Session) submitScore(result Result) int {
	if s.deps.Board == nil {
		return 0
	}

	rank, err := s.deps.Board.Submit(scoreboard.Entry{
		Date:  scoreboard.FormatDate(result.EndedAt),
		Level: result.Level,
		Modes: result.Modes,
	})
	if err != nil {
		s.log.Warn("could not save score", "error", err)
		return 0
	}
	return rank
}

// restoreBoard undoes presentation modes: rotation, shuffled order and
// any pending distraction.
func (s *Session) restoreBoard() {
	if s.rotating {
		s.rotating = false
		s.deps.Renderer.SetRotating(false)
	}
	if s.shuffled {
		s.deps.Renderer.ArrangeTiles(core.IdentityOrder())
		s.shuffled = false
	}
	s.distracting = false
}

func (s *Session) shuffle() {
	s.shuffleTimer = nil
	s.shuffled = true
	s.deps.Renderer.ArrangeTiles(s.rng.Perm(core.TileCount))
}

// startDistractions arms the periodic distraction timer. The interval is
// drawn once per game.
func (s *Session) startDistractions() {
	d := s.cfg.Distract
	s.distractEvery = d.MinDelay
	if spread := d.MaxDelay - d.MinDelay; spread > 0 {
		s.distractEvery += time.Duration(s.rng.Int64N(int64(spread)))
	}
	if s.distractEvery <= 0 {
		s.distractEvery = time.Second
	}
	s.distractTimer = s.after(s.distractEvery, s.distractTick)
}

func (s *Session) distractTick() {
	if !s.running {
		return
	}

	if !s.distracting && s.rng.Float64() < s.cfg.Distract.Chance {
		kind := core.PickDistraction(s.rng)
		s.distracting = true
		s.deps.Renderer.Distract(kind, kind.Duration())
		s.distractEnd = s.after(kind.Duration(), func() {
			s.distracting = false
			s.distractEnd = nil
		})
	}

	s.distractTimer = s.after(s.distractEvery, s.distractTick)
}

// after schedules fn for the current game only.
func (s *Session) after(d time.Duration, fn func()) Handle {
	gen := s.gen
	return s.deps.Scheduler.Schedule(d, func() {
		if gen != s.gen {
			return
		}
		fn()
	})
}

func (s *Session) cancelTimers() {
	for _, h := range []Handle{s.replayTimer, s.shuffleTimer, s.distractTimer, s.distractEnd} {
		if h != nil {
			h.Cancel()
		}
	}
	s.replayTimer = nil
	s.shuffleTimer = nil
	s.distractTimer = nil
	s.distractEnd = nil
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	return State{
		Phase:           s.phase,
		Level:           s.level,
		LevelMax:        s.levelMax,
		Turn:            s.turn,
		ReplayProgress:  s.replayProgress,
		Running:         s.running,
		Seed:            s.seed,
		PlayedFromShare: s.playedFromShare,
		Modes:           s.modes,
		Timing:          s.timing,
	}
}

// Pattern returns a copy of the current game's pattern.
func (s *Session) Pattern() []int {
	return append([]int(nil), s.pattern...)
}

// LastResult returns the outcome of the most recent finished game.
func (s *Session) LastResult() (Result, bool) {
	if s.lastResult == nil {
		return Result{}, false
	}
	return *s.lastResult, true
}

// Board returns the score board, which may be nil.
func (s *Session) Board() *scoreboard.Board {
	return s.deps.Board
}

// Config returns the session's rules.
func (s *Session) Config() Config {
	return s.cfg
}
