// Package web serves the share-link API: it decodes shared games, previews
// patterns and exposes the top-5 board over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-simon/internal/core"
	"github.com/vovakirdan/tui-simon/internal/scoreboard"
	"github.com/vovakirdan/tui-simon/internal/share"
	"github.com/vovakirdan/tui-simon/internal/simon"
	"github.com/vovakirdan/tui-simon/internal/storage"
)

// maxPatternLevels bounds /pattern responses and shared levels.
const maxPatternLevels = simon.MaxSharedLevel

// GameHistory lists finished games. Implemented by *storage.Store.
type GameHistory interface {
	RecentGames(limit int) ([]storage.GameRecord, error)
	Stats() (*storage.GameStats, error)
}

// Server bundles the router with the game configuration and score board.
type Server struct {
	r       *chi.Mux
	cfg     simon.Config
	board   *scoreboard.Board
	history GameHistory // Optional, can be nil
	logger  *log.Logger
	http    *http.Server
}

// New constructs a Server, installs middleware and registers routes.
func New(cfg simon.Config, board *scoreboard.Board, history GameHistory, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if board == nil {
		board = scoreboard.New(nil)
	}

	s := &Server{r: chi.NewRouter(), cfg: cfg, board: board, history: history, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.requestLogger)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/share", s.handleShare)
	s.r.Get("/pattern", s.handlePattern)
	s.r.Route("/scores", func(r chi.Router) {
		r.Get("/", s.handleScores)
		r.Get("/history", s.handleHistory)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the router for tests and embedding.
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves HTTP on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// timingRes is one level's durations in milliseconds.
type timingRes struct {
	TurnMs            int64   `json:"turn_ms"`
	LevelTransitionMs int64   `json:"level_transition_ms"`
	FlashColorMs      int64   `json:"flash_color_ms"`
	ScaleSpeed        float64 `json:"scale_speed"`
}

func toTimingRes(t simon.Timing) timingRes {
	return timingRes{
		TurnMs:            t.Turn.Milliseconds(),
		LevelTransitionMs: t.LevelTransition.Milliseconds(),
		FlashColorMs:      t.FlashColor.Milliseconds(),
		ScaleSpeed:        t.ScaleSpeed,
	}
}

// shareRes describes a decoded shared game.
type shareRes struct {
	Level   int        `json:"level"`
	Modes   core.Modes `json:"modes"`
	Seed    int64      `json:"seed"`
	Query   string     `json:"query"`
	Link    string     `json:"link"`
	Pattern []int      `json:"pattern"` // Tiles the replay opens with
	Timing  timingRes  `json:"timing"`
}

// handleShare decodes ?level=&modes=&seed= into the game it replays.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	st, err := share.Decode(r.URL.RawQuery)
	if err != nil {
		writeError(w, http.StatusBadRequest, share.ErrNoState.Error())
		return
	}

	if st.Level > maxPatternLevels {
		writeError(w, http.StatusBadRequest, "level too large")
		return
	}

	writeJSON(w, http.StatusOK, shareRes{
		Level:   st.Level,
		Modes:   st.Modes,
		Seed:    st.Seed,
		Query:   st.Query(),
		Link:    share.Link(s.cfg.ShareBaseURL, st.Query()),
		Pattern: simon.GeneratePattern(st.Seed, st.Level),
		Timing:  toTimingRes(simon.ComputeTiming(st.Level, s.cfg.Base, s.cfg.Scale, 1)),
	})
}

// patternRes is the tile sequence for a seed.
type patternRes struct {
	Seed    int64    `json:"seed"`
	Pattern []int    `json:"pattern"`
	Colors  []string `json:"colors"`
}

// handlePattern returns ?levels= tiles of the pattern for ?seed=.
func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	seed, err := strconv.ParseInt(q.Get("seed"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "seed must be an integer")
		return
	}

	levels := 10
	if v := q.Get("levels"); v != "" {
		levels, err = strconv.Atoi(v)
		if err != nil || levels < 1 || levels > maxPatternLevels {
			writeError(w, http.StatusBadRequest, "levels must be between 1 and 1000")
			return
		}
	}

	pattern := simon.GeneratePattern(seed, levels)
	colors := make([]string, len(pattern))
	for i, tile := range pattern {
		colors[i] = core.Tiles[tile].Name
	}

	writeJSON(w, http.StatusOK, patternRes{Seed: seed, Pattern: pattern, Colors: colors})
}

// scoresRes is the top-5 board.
type scoresRes struct {
	Available bool               `json:"available"`
	Message   string             `json:"message,omitempty"`
	Scores    []scoreboard.Entry `json:"scores"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	entries, err := s.board.List()
	if err != nil {
		s.logger.Warn("cannot list scores", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot list scores")
		return
	}

	res := scoresRes{Available: s.board.Available(), Scores: entries}
	if res.Scores == nil {
		res.Scores = []scoreboard.Entry{}
	}
	if !res.Available {
		res.Message = scoreboard.UnavailableMessage
	}
	writeJSON(w, http.StatusOK, res)
}

// historyRes is recent games plus aggregate stats.
type historyRes struct {
	Stats *storage.GameStats   `json:"stats"`
	Games []storage.GameRecord `json:"games"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history needs a scores database")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	games, err := s.history.RecentGames(limit)
	if err != nil {
		s.logger.Warn("cannot list games", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot list games")
		return
	}
	stats, err := s.history.Stats()
	if err != nil {
		s.logger.Warn("cannot read stats", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot read stats")
		return
	}

	if games == nil {
		games = []storage.GameRecord{}
	}
	writeJSON(w, http.StatusOK, historyRes{Stats: stats, Games: games})
}
