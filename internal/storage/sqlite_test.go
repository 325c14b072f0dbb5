package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-simon/internal/core"
	"github.com/vovakirdan/tui-simon/internal/scoreboard"
	"github.com/vovakirdan/tui-simon/internal/simon"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	if err := store.KV("x").Set("a", []byte("1")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	all, err := store.KV("x").GetAll()
	if err != nil || string(all["a"]) != "1" {
		t.Errorf("GetAll() = %v, %v, expected a=1", all, err)
	}
}

func TestKVSetGetClear(t *testing.T) {
	store := openTestStore(t)
	kv := store.KV("one")
	other := store.KV("two")

	if err := kv.Set("k", []byte("v1")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := kv.Set("k", []byte("v2")); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}
	if err := other.Set("k", []byte("other")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	all, err := kv.GetAll()
	if err != nil {
		t.Fatalf("GetAll() failed: %v", err)
	}
	if len(all) != 1 || string(all["k"]) != "v2" {
		t.Errorf("GetAll() = %v, expected k=v2", all)
	}

	if err := kv.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if all, _ := kv.GetAll(); len(all) != 0 {
		t.Errorf("GetAll() after Clear = %v, expected empty", all)
	}
	if all, _ := other.GetAll(); string(all["k"]) != "other" {
		t.Errorf("Clear() touched another namespace: %v", all)
	}
}

func TestBoardPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	board := store.Board()
	for _, level := range []int{3, 8, 1, 5, 9, 4} {
		if _, err := board.Submit(scoreboard.Entry{Date: "Oct 16 2026, 9:5:3", Level: level}); err != nil {
			t.Fatalf("Submit(%d) failed: %v", level, err)
		}
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	entries, err := store.Board().List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	expected := []int{9, 8, 5, 4, 3}
	if len(entries) != len(expected) {
		t.Fatalf("List() returned %d entries, expected %d", len(entries), len(expected))
	}
	for i, e := range entries {
		if e.Level != expected[i] {
			t.Errorf("entries[%d].Level = %d, expected %d", i, e.Level, expected[i])
		}
	}
}

func TestKVReplaceAll(t *testing.T) {
	store := openTestStore(t)
	kv := store.KV("scores")
	other := store.KV("other")

	kv.Set("entry-0", []byte("old"))
	kv.Set("entry-4", []byte("stale"))
	other.Set("entry-0", []byte("keep"))

	err := kv.ReplaceAll(map[string][]byte{
		"entry-0": []byte("a"),
		"entry-1": []byte("b"),
	})
	if err != nil {
		t.Fatalf("ReplaceAll() failed: %v", err)
	}

	all, _ := kv.GetAll()
	if len(all) != 2 || string(all["entry-0"]) != "a" || string(all["entry-1"]) != "b" {
		t.Errorf("GetAll() after ReplaceAll = %v", all)
	}
	if all, _ := other.GetAll(); string(all["entry-0"]) != "keep" {
		t.Errorf("ReplaceAll() touched another namespace: %v", all)
	}
}

func TestBoardSharedAcrossGames(t *testing.T) {
	store := openTestStore(t)
	if store.Board() != store.Board() {
		t.Fatal("Board() should return one board per store")
	}

	var wg sync.WaitGroup
	for _, level := range []int{4, 7, 2, 9} {
		wg.Add(1)
		go func(level int) {
			defer wg.Done()
			if _, err := store.Board().Submit(scoreboard.Entry{Date: "Oct 16 2026, 9:5:3", Level: level}); err != nil {
				t.Errorf("Submit(%d) failed: %v", level, err)
			}
		}(level)
	}
	wg.Wait()

	entries, err := store.Board().List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 4 || entries[0].Level != 9 || entries[3].Level != 2 {
		t.Errorf("List() = %+v, expected all four games ranked", entries)
	}
}

func TestSaveAndQueryGames(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

	games := []GameRecord{
		{Seed: 1, Level: 4, LevelMax: 100, Modes: core.Modes{Shuffle: true}, CreatedAt: base},
		{Seed: 2, Level: 12, LevelMax: 100, ShareLink: "http://x?level=11", Rank: 1, CreatedAt: base.Add(time.Minute)},
		{Seed: 3, Level: 5, LevelMax: 5, Won: true, Modes: core.Modes{Rotate: true, Distract: true}, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, g := range games {
		if _, err := store.SaveGame(g); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	recent, err := store.RecentGames(2)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Seed != 3 || recent[1].Seed != 2 {
		t.Errorf("RecentGames() seeds = %v, expected [3 2]", seeds(recent))
	}
	if !recent[0].Won || !recent[0].Modes.Rotate || !recent[0].Modes.Distract || recent[0].Modes.Shuffle {
		t.Errorf("RecentGames()[0] = %+v, expected won rotate+distract", recent[0])
	}
	if recent[1].ShareLink != "http://x?level=11" || recent[1].Rank != 1 {
		t.Errorf("RecentGames()[1] = %+v", recent[1])
	}

	best, err := store.BestGames(10)
	if err != nil {
		t.Fatalf("BestGames() failed: %v", err)
	}
	if got := seeds(best); len(got) != 3 || got[0] != 2 || got[1] != 3 || got[2] != 1 {
		t.Errorf("BestGames() seeds = %v, expected [2 3 1]", got)
	}

	rec, err := store.GameByID(best[0].ID)
	if err != nil || rec == nil || rec.Level != 12 {
		t.Errorf("GameByID() = %+v, %v, expected level 12", rec, err)
	}
	missing, err := store.GameByID(9999)
	if err != nil || missing != nil {
		t.Errorf("GameByID(9999) = %+v, %v, expected nil, nil", missing, err)
	}
}

func seeds(records []GameRecord) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.Seed
	}
	return out
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.BestLevel != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty Stats() = %+v", stats)
	}

	for _, level := range []int{2, 6, 10} {
		if _, err := store.SaveGame(GameRecord{Seed: 1, Level: level, LevelMax: 10, Won: level == 10}); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 3 {
		t.Errorf("GamesCount = %d, expected 3", stats.GamesCount)
	}
	if stats.BestLevel != 10 {
		t.Errorf("BestLevel = %d, expected 10", stats.BestLevel)
	}
	if stats.AvgLevel != 6 {
		t.Errorf("AvgLevel = %v, expected 6", stats.AvgLevel)
	}
	if stats.Wins != 1 {
		t.Errorf("Wins = %d, expected 1", stats.Wins)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed is zero")
	}

	if err := store.ClearGames(); err != nil {
		t.Fatalf("ClearGames() failed: %v", err)
	}
	if recent, _ := store.RecentGames(0); len(recent) != 0 {
		t.Errorf("RecentGames() after clear = %d records", len(recent))
	}
}

func TestSaveResult(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveResult(simon.Result{
		Level:      7,
		LevelStart: 1,
		LevelMax:   100,
		Seed:       1349823412345,
		Modes:      core.Modes{Shuffle: true},
		Link:       "http://nickjj.github.com/simon?level=6&modes=true,false,false&seed=1349823412345",
		Rank:       2,
		EndedAt:    time.Date(2026, time.October, 16, 9, 5, 3, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	recent, err := store.RecentGames(1)
	if err != nil || len(recent) != 1 {
		t.Fatalf("RecentGames() = %v, %v", recent, err)
	}
	got := recent[0]
	if got.Seed != 1349823412345 || got.Level != 7 || got.Rank != 2 || !got.Modes.Shuffle {
		t.Errorf("saved record = %+v", got)
	}
}

func TestParseTime(t *testing.T) {
	ref := time.Date(2026, time.October, 16, 9, 5, 3, 0, time.UTC)

	tests := []struct {
		name     string
		in       any
		expected time.Time
	}{
		{"time value", ref, ref},
		{"sqlite string", "2026-10-16 09:05:03", ref},
		{"rfc3339", "2026-10-16T09:05:03Z", ref},
		{"garbage", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTime(tt.in); !got.Equal(tt.expected) {
				t.Errorf("parseTime(%v) = %v, expected %v", tt.in, got, tt.expected)
			}
		})
	}
}
