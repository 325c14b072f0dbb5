// Package scoreboard keeps the top five results of finished games.
//
// The board is pure ranking logic over a snapshot it reads from and writes
// to a key/value collaborator. Storage that is missing or failing degrades
// to an empty board and silent no-op writes.
package scoreboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-simon/internal/core"
)

// Capacity is the number of results the board keeps.
const Capacity = 5

const keyPrefix = "entry-"

// ErrUnavailable reports that the key/value store cannot be used at all.
var ErrUnavailable = errors.New("scoreboard: storage unavailable")

// UnavailableMessage is shown in place of the board when storage is missing.
const UnavailableMessage = "Sorry, your terminal session does not support this feature."

// KeyValueStore is the persistence collaborator.
type KeyValueStore interface {
	GetAll() (map[string][]byte, error)
	Set(key string, value []byte) error
	Clear() error
}

// Replacer is implemented by stores that can swap the whole board in one
// step. Board uses it when available.
type Replacer interface {
	ReplaceAll(values map[string][]byte) error
}

// Entry is one ranked result.
type Entry struct {
	Date  string     `json:"date"`
	Level int        `json:"level"`
	Modes core.Modes `json:"modes"`
}

// Board ranks entries over a KeyValueStore. It is safe for concurrent use;
// callers sharing a store must share one Board.
type Board struct {
	mu sync.Mutex
	kv KeyValueStore
}

// New creates a board. A nil store behaves as unavailable storage.
func New(kv KeyValueStore) *Board {
	return &Board{kv: kv}
}

// Available reports whether scores can be read and written.
func (b *Board) Available() bool {
	_, ok, _ := b.load()
	return ok
}

// List returns the current board, best first.
// Unavailable storage returns an empty board and no error.
func (b *Board) List() ([]Entry, error) {
	if b == nil {
		return nil, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, _, err := b.load()
	return entries, err
}

// Submit ranks entry into the board.
// Returns the 1-based rank it landed at, or 0 when it did not make the board
// or storage is unavailable.
func (b *Board) Submit(entry Entry) (int, error) {
	if b == nil {
		return 0, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, ok, err := b.load()
	if err != nil || !ok {
		return 0, err
	}

	updated, rank := Insert(entries, entry)
	if rank == 0 {
		return 0, nil
	}
	if err := b.write(updated); err != nil {
		return 0, err
	}
	return rank, nil
}

// load reads the stored board and reports whether storage is usable.
func (b *Board) load() ([]Entry, bool, error) {
	if b == nil || b.kv == nil {
		return nil, false, nil
	}

	raw, err := b.kv.GetAll()
	if errors.Is(err, ErrUnavailable) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, fmt.Errorf("scoreboard: cannot read scores: %w", err)
	}

	return decodeEntries(raw), true, nil
}

// Clear removes every entry.
func (b *Board) Clear() error {
	if b == nil || b.kv == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.kv.Clear()
	if err != nil && !errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("scoreboard: cannot clear scores: %w", err)
	}
	return nil
}

// write replaces the stored board with entries. Without a Replacer the
// entries are overwritten in place; a board only grows on Submit, so no
// stale keys remain and a failed write never truncates it.
func (b *Board) write(entries []Entry) error {
	if b == nil || b.kv == nil {
		return nil
	}

	values := make(map[string][]byte, len(entries))
	for i, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("scoreboard: cannot encode entry: %w", err)
		}
		values[keyPrefix+strconv.Itoa(i)] = data
	}

	if r, ok := b.kv.(Replacer); ok {
		if err := r.ReplaceAll(values); err != nil && !errors.Is(err, ErrUnavailable) {
			return fmt.Errorf("scoreboard: cannot rewrite scores: %w", err)
		}
		return nil
	}

	for i := range entries {
		key := keyPrefix + strconv.Itoa(i)
		if err := b.kv.Set(key, values[key]); err != nil && !errors.Is(err, ErrUnavailable) {
			return fmt.Errorf("scoreboard: cannot save entry: %w", err)
		}
	}
	return nil
}

// Insert places entry into a board sorted by level descending.
// The entry goes before the first entry with a strictly lower level, or at
// the end when the board still has room. It is inserted at most once, and
// the board never grows past Capacity. Returns the new board and the
// 1-based rank of the entry (0 if it did not qualify).
func Insert(board []Entry, entry Entry) ([]Entry, int) {
	pos := -1
	for i, e := range board {
		if entry.Level > e.Level {
			pos = i
			break
		}
	}
	if pos < 0 {
		if len(board) >= Capacity {
			return board, 0
		}
		pos = len(board)
	}

	out := make([]Entry, 0, len(board)+1)
	out = append(out, board[:pos]...)
	out = append(out, entry)
	out = append(out, board[pos:]...)

	if len(out) > Capacity {
		out = out[:Capacity]
	}
	return out, pos + 1
}

// decodeEntries turns stored records into a ranked slice.
// Malformed records are skipped.
func decodeEntries(raw map[string][]byte) []Entry {
	type keyed struct {
		index int
		entry Entry
	}

	var records []keyed
	for k, v := range raw {
		if !strings.HasPrefix(k, keyPrefix) {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(k, keyPrefix))
		if err != nil {
			continue
		}
		var e Entry
		if err := json.Unmarshal(v, &e); err != nil {
			continue
		}
		records = append(records, keyed{index: idx, entry: e})
	}

	// Stored order is the rank order; the level sort only repairs boards
	// written by something else.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].index < records[j].index
	})
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].entry.Level > records[j].entry.Level
	})

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.entry)
	}
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	return entries
}
