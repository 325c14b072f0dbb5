package storage

import (
	"fmt"

	"github.com/vovakirdan/tui-simon/internal/scoreboard"
)

// BoardNamespace is the kv namespace holding the top-5 board.
const BoardNamespace = "simon-scores"

// KV is a namespaced key/value view over the kv table.
type KV struct {
	store     *Store
	namespace string
}

// KV returns the key/value view for a namespace.
func (s *Store) KV(namespace string) *KV {
	return &KV{store: s, namespace: namespace}
}

// Board returns the score board persisted in this store. Every call
// returns the same Board, so concurrent games rank against one lock.
func (s *Store) Board() *scoreboard.Board {
	s.boardOnce.Do(func() {
		s.board = scoreboard.New(s.KV(BoardNamespace))
	})
	return s.board
}

// GetAll returns every key in the namespace.
func (kv *KV) GetAll() (map[string][]byte, error) {
	rows, err := kv.store.db.Query(
		"SELECT key, value FROM kv WHERE namespace = ?",
		kv.namespace,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query kv: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// Set stores value under key, replacing any previous value.
func (kv *KV) Set(key string, value []byte) error {
	_, err := kv.store.db.Exec(
		`INSERT INTO kv (namespace, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		kv.namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set %s/%s: %w", kv.namespace, key, err)
	}
	return nil
}

// ReplaceAll swaps the namespace's contents for values in one transaction.
func (kv *KV) ReplaceAll(values map[string][]byte) error {
	tx, err := kv.store.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM kv WHERE namespace = ?", kv.namespace); err != nil {
		return fmt.Errorf("storage: cannot clear %s: %w", kv.namespace, err)
	}
	for key, value := range values {
		_, err := tx.Exec(
			`INSERT INTO kv (namespace, key, value, updated_at)
			 VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
			kv.namespace, key, value,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot set %s/%s: %w", kv.namespace, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit %s: %w", kv.namespace, err)
	}
	return nil
}

// Clear deletes every key in the namespace.
func (kv *KV) Clear() error {
	_, err := kv.store.db.Exec("DELETE FROM kv WHERE namespace = ?", kv.namespace)
	if err != nil {
		return fmt.Errorf("storage: cannot clear %s: %w", kv.namespace, err)
	}
	return nil
}

// Ensure KV implements scoreboard.KeyValueStore and scoreboard.Replacer
var (
	_ scoreboard.KeyValueStore = (*KV)(nil)
	_ scoreboard.Replacer      = (*KV)(nil)
)
