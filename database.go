package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// one writer at a time; the analytics flusher and result writes share it
	conn.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id TEXT NOT NULL UNIQUE,
		player_name TEXT NOT NULL,
		outcome TEXT NOT NULL,
		ticks INTEGER NOT NULL DEFAULT 0,
		kills INTEGER NOT NULL DEFAULT 0,
		shots INTEGER NOT NULL DEFAULT 0,
		damage_taken INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS match_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		tick INTEGER NOT NULL DEFAULT 0,
		data TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_match_events_match ON match_events(match_id);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// GetSetting returns a stored setting, or "" if unset
func (db *DB) GetSetting(key string) string {
	var v string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if err != nil {
		return ""
	}
	return v
}

// SetSetting stores a setting, replacing any previous value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// RecordResult stores the outcome of a finished match. A match is recorded
// at most once; later calls for the same match ID are ignored.
func (db *DB) RecordResult(r MatchResult) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := db.conn.Exec(
		`INSERT OR IGNORE INTO results (match_id, player_name, outcome, ticks, kills, shots, damage_taken, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.PlayerName, r.Outcome, r.Ticks, r.Kills, r.ShotsFired, r.DamageTaken,
		r.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// RecentResults returns the latest results, newest first
func (db *DB) RecentResults(limit int) ([]MatchResult, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, player_name, outcome, ticks, kills, shots, damage_taken, created_at
		FROM results
		ORDER BY id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []MatchResult{}
	for rows.Next() {
		var r MatchResult
		var created string
		if err := rows.Scan(&r.MatchID, &r.PlayerName, &r.Outcome, &r.Ticks, &r.Kills, &r.ShotsFired, &r.DamageTaken, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		result = append(result, r)
	}
	return result, rows.Err()
}

// EventCounts returns how many events of each type a match logged
func (db *DB) EventCounts(matchID string) (map[string]int, error) {
	rows, err := db.conn.Query(
		"SELECT event_type, COUNT(*) FROM match_events WHERE match_id = ? GROUP BY event_type",
		matchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var evtType string
		var n int
		if err := rows.Scan(&evtType, &n); err != nil {
			return nil, err
		}
		counts[evtType] = n
	}
	return counts, rows.Err()
}
