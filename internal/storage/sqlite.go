// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db *sql.DB
}

// Match represents one finished round.
type Match struct {
	ID         int64
	GameID     string
	Players    int   // Seats in the round
	Winner     int   // 1-based seat of the winner, 0 for a draw
	DurationMs int64 // Round length in game time
	CreatedAt  time.Time
}

// Draw reports whether nobody survived the round.
func (m Match) Draw() bool {
	return m.Winner == 0
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			players INTEGER NOT NULL,
			winner INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id);
		CREATE INDEX IF NOT EXISTS idx_matches_winner ON matches(game_id, winner);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m Match) (int64, error) {
	if m.Players < 1 || m.Winner < 0 || m.Winner > m.Players {
		return 0, fmt.Errorf("storage: invalid match: winner %d of %d players", m.Winner, m.Players)
	}

	result, err := s.db.Exec(
		"INSERT INTO matches (game_id, players, winner, duration_ms) VALUES (?, ?, ?, ?)",
		m.GameID, m.Players, m.Winner, m.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentMatches retrieves the latest matches for the given game, newest
// first.
func (s *Store) RecentMatches(gameID string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, players, winner, duration_ms, created_at
		 FROM matches
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var createdAt any
		if err := rows.Scan(&m.ID, &m.GameID, &m.Players, &m.Winner, &m.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// WinCounts returns the number of wins per seat for the given game. Key 0
// counts draws. Seats without wins are absent.
func (s *Store) WinCounts(gameID string) (map[int]int, error) {
	rows, err := s.db.Query(
		`SELECT winner, COUNT(*)
		 FROM matches
		 WHERE game_id = ?
		 GROUP BY winner`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query win counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var seat, n int
		if err := rows.Scan(&seat, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[seat] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID        string
	MatchCount    int
	Draws         int
	AvgDurationMs float64
	LongestMs     int64
	LastPlayed    time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(duration_ms), 0),
		        COALESCE(MAX(duration_ms), 0)
		 FROM matches WHERE game_id = ?`,
		gameID,
	).Scan(&stats.MatchCount, &stats.Draws, &stats.AvgDurationMs, &stats.LongestMs)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM matches WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearMatches deletes all matches for the given game.
func (s *Store) ClearMatches(gameID string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string DATETIME values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
