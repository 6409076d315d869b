package leaderboard

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the board in a SQLite table, one row per rank.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("leaderboard: enable WAL: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the entries table.
func (s *SQLiteStore) Migrate() error {
	const ddl = `CREATE TABLE IF NOT EXISTS leaderboard_entries (
		position INTEGER PRIMARY KEY,
		score INTEGER NOT NULL,
		time_taken REAL NOT NULL,
		level_reached INTEGER NOT NULL,
		date TEXT NOT NULL
	)`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("leaderboard: migrate: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the rows in rank order.
func (s *SQLiteStore) Load() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT score, time_taken, level_reached, date
		FROM leaderboard_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Score, &e.TimeTaken, &e.LevelReached, &e.Date); err != nil {
			return nil, fmt.Errorf("%w: scan entry: %v", ErrCorrupt, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard: iterate entries: %w", err)
	}
	return entries, nil
}

// Save replaces all rows in a single transaction.
func (s *SQLiteStore) Save(entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("leaderboard: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM leaderboard_entries`); err != nil {
		return fmt.Errorf("leaderboard: clear entries: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO leaderboard_entries
		(position, score, time_taken, level_reached, date) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("leaderboard: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(i+1, e.Score, e.TimeTaken, e.LevelReached, e.Date); err != nil {
			return fmt.Errorf("leaderboard: insert entry %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("leaderboard: commit: %w", err)
	}
	return nil
}
