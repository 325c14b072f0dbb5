package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-simon/internal/core"
	"github.com/vovakirdan/tui-simon/internal/scoreboard"
	"github.com/vovakirdan/tui-simon/internal/simon"
	"github.com/vovakirdan/tui-simon/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(simon.DefaultConfig(), store.Board(), store, nil), store
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestShare(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/share?level=4&modes=true,false,true&seed=42")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var res shareRes
	decode(t, rec, &res)

	if res.Level != 4 || res.Seed != 42 {
		t.Errorf("level/seed = %d/%d, expected 4/42", res.Level, res.Seed)
	}
	if want := (core.Modes{Shuffle: true, Distract: true}); res.Modes != want {
		t.Errorf("modes = %+v, expected %+v", res.Modes, want)
	}
	if want := []int{2, 4, 5, 1}; !reflect.DeepEqual(res.Pattern, want) {
		t.Errorf("pattern = %v, expected %v", res.Pattern, want)
	}
	if res.Link != "http://nickjj.github.com/simon?level=4&modes=true,false,true&seed=42" {
		t.Errorf("link = %q", res.Link)
	}
	if res.Timing.TurnMs != 1410 || res.Timing.LevelTransitionMs != 705 {
		t.Errorf("timing = %+v, expected turn 1410ms and transition 705ms", res.Timing)
	}
}

func TestShareRejectsBadInput(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []string{
		"/share",
		"/share?level=0&modes=false,false,false&seed=1",
		"/share?level=2&modes=false,false&seed=1",
		"/share?level=2&modes=false,false,false&seed=x",
		"/share?level=5000&modes=false,false,false&seed=1",
	}

	for _, target := range tests {
		if rec := get(t, s, target); rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, expected %d", target, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestPattern(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/pattern?seed=42&levels=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusOK)
	}

	var res patternRes
	decode(t, rec, &res)
	if want := []int{2, 4, 5, 1, 4}; !reflect.DeepEqual(res.Pattern, want) {
		t.Errorf("pattern = %v, expected %v", res.Pattern, want)
	}
	if want := []string{"blue", "purple", "orange", "green", "purple"}; !reflect.DeepEqual(res.Colors, want) {
		t.Errorf("colors = %v, expected %v", res.Colors, want)
	}

	for _, target := range []string{"/pattern", "/pattern?seed=1&levels=0", "/pattern?seed=1&levels=abc"} {
		if rec := get(t, s, target); rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, expected %d", target, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestScores(t *testing.T) {
	s, store := newTestServer(t)

	for _, level := range []int{3, 9} {
		if _, err := store.Board().Submit(scoreboard.Entry{Date: "Oct 6 2026, 9:5:3", Level: level}); err != nil {
			t.Fatalf("Submit() error: %v", err)
		}
	}

	rec := get(t, s, "/scores")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusOK)
	}

	var res scoresRes
	decode(t, rec, &res)
	if !res.Available {
		t.Error("board should be available")
	}
	if len(res.Scores) != 2 || res.Scores[0].Level != 9 {
		t.Errorf("scores = %+v, expected level 9 first", res.Scores)
	}
}

func TestScoresUnavailable(t *testing.T) {
	s := New(simon.DefaultConfig(), scoreboard.New(scoreboard.Unavailable{}), nil, nil)

	rec := get(t, s, "/scores")
	var res scoresRes
	decode(t, rec, &res)

	if res.Available || res.Message != scoreboard.UnavailableMessage {
		t.Errorf("response = %+v, expected unavailable message", res)
	}
	if res.Scores == nil || len(res.Scores) != 0 {
		t.Errorf("scores = %v, expected empty list", res.Scores)
	}

	if rec := get(t, s, "/scores/history"); rec.Code != http.StatusNotFound {
		t.Errorf("history without store status = %d, expected %d", rec.Code, http.StatusNotFound)
	}
}

func TestHistory(t *testing.T) {
	s, store := newTestServer(t)

	if _, err := store.SaveGame(storage.GameRecord{Seed: 42, Level: 5, LevelStart: 1, LevelMax: 5, Won: true}); err != nil {
		t.Fatalf("SaveGame() error: %v", err)
	}

	rec := get(t, s, "/scores/history?limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusOK)
	}

	var res historyRes
	decode(t, rec, &res)
	if res.Stats.GamesCount != 1 || res.Stats.Wins != 1 {
		t.Errorf("stats = %+v, expected one win", res.Stats)
	}
	if len(res.Games) != 1 || res.Games[0].Seed != 42 {
		t.Errorf("games = %+v", res.Games)
	}

	if rec := get(t, s, "/scores/history?limit=-1"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, expected %d", rec.Code, http.StatusBadRequest)
	}
}

func TestNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	if rec := get(t, s, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected %d", rec.Code, http.StatusNotFound)
	}
}
