package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-simon/internal/core"
	"github.com/vovakirdan/tui-simon/internal/simon"
)

// GameRecord is one finished game in the history table.
type GameRecord struct {
	ID         int64      `json:"id"`
	Seed       int64      `json:"seed"`
	Level      int        `json:"level"`
	LevelStart int        `json:"level_start"`
	LevelMax   int        `json:"level_max"`
	Won        bool       `json:"won"`
	Modes      core.Modes `json:"modes"`
	ShareLink  string     `json:"share_link,omitempty"` // Empty when the game was not shareable
	Rank       int        `json:"rank"`                 // Board position at the time, 0 if unranked
	CreatedAt  time.Time  `json:"created_at"`
}

// GameStats contains aggregated statistics over the history.
type GameStats struct {
	GamesCount int       `json:"games_count"`
	BestLevel  int       `json:"best_level"`
	AvgLevel   float64   `json:"avg_level"`
	Wins       int       `json:"wins"`
	LastPlayed time.Time `json:"last_played"`
}

const gameColumns = `id, seed, level, level_start, level_max, won, shuffle, rotate, distract,
	share_link, rank, created_at`

// SaveGame records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveGame(rec GameRecord) (int64, error) {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.Exec(
		`INSERT INTO games
		 (seed, level, level_start, level_max, won, shuffle, rotate, distract, share_link, rank, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Seed,
		rec.Level,
		rec.LevelStart,
		rec.LevelMax,
		rec.Won,
		rec.Modes.Shuffle,
		rec.Modes.Rotate,
		rec.Modes.Distract,
		rec.ShareLink,
		rec.Rank,
		createdAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveResult implements simon.ResultSaver.
// This adapter allows the session to keep a history without direct storage dependency.
func (s *Store) SaveResult(r simon.Result) error {
	_, err := s.SaveGame(GameRecord{
		Seed:       r.Seed,
		Level:      r.Level,
		LevelStart: r.LevelStart,
		LevelMax:   r.LevelMax,
		Won:        r.Won,
		Modes:      r.Modes,
		ShareLink:  r.Link,
		Rank:       r.Rank,
		CreatedAt:  r.EndedAt,
	})
	return err
}

// Ensure Store implements ResultSaver
var _ simon.ResultSaver = (*Store)(nil)

// GameByID retrieves a game by its ID. Returns nil if it does not exist.
func (s *Store) GameByID(id int64) (*GameRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+gameColumns+` FROM games WHERE id = ?`,
		id,
	)

	rec, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}
	return &rec, nil
}

// RecentGames retrieves the most recent games, newest first.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryGames(
		`SELECT `+gameColumns+` FROM games ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
}

// BestGames retrieves the highest-level games of all time.
func (s *Store) BestGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryGames(
		`SELECT `+gameColumns+` FROM games ORDER BY level DESC, id ASC LIMIT ?`,
		limit,
	)
}

// Stats aggregates the whole history.
func (s *Store) Stats() (*GameStats, error) {
	stats := &GameStats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(level), 0), COALESCE(AVG(level), 0),
		        COALESCE(SUM(won), 0), MAX(created_at)
		 FROM games`,
	).Scan(&stats.GamesCount, &stats.BestLevel, &stats.AvgLevel, &stats.Wins, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearGames deletes the whole history.
func (s *Store) ClearGames() error {
	_, err := s.db.Exec("DELETE FROM games")
	if err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

func (s *Store) queryGames(query string, args ...any) ([]GameRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (GameRecord, error) {
	var rec GameRecord
	var link sql.NullString
	var createdAt any

	err := row.Scan(
		&rec.ID,
		&rec.Seed,
		&rec.Level,
		&rec.LevelStart,
		&rec.LevelMax,
		&rec.Won,
		&rec.Modes.Shuffle,
		&rec.Modes.Rotate,
		&rec.Modes.Distract,
		&link,
		&rec.Rank,
		&createdAt,
	)
	if err != nil {
		return rec, err
	}

	if link.Valid {
		rec.ShareLink = link.String
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}
