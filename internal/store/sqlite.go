package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/cache"
)

// SQLite persists entries in a single-table SQLite database. The rank
// column preserves the least- to most-recently-used ordering across
// round-trips.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dbPath, enables WAL mode
// and initializes the schema.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	createSQL := `
		CREATE TABLE IF NOT EXISTS positions (
			path TEXT PRIMARY KEY,
			line INTEGER NOT NULL,
			ch   INTEGER NOT NULL,
			rank INTEGER NOT NULL
		);
	`
	if _, err := db.Exec(createSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLite{db: db}, nil
}

// withTx executes fn within a transaction.
func (s *SQLite) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Load returns all persisted entries ordered by rank, oldest first.
func (s *SQLite) Load() ([]cache.Entry, error) {
	rows, err := s.db.Query(`SELECT path, line, ch FROM positions ORDER BY rank`)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var entries []cache.Entry
	for rows.Next() {
		var e cache.Entry
		if err := rows.Scan(&e.File, &e.Cursor.Line, &e.Cursor.Ch); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Save rewrites the positions table with entries in order.
func (s *SQLite) Save(entries []cache.Entry) error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM positions`); err != nil {
			return fmt.Errorf("failed to clear positions: %w", err)
		}
		for rank, e := range entries {
			if _, err := tx.Exec(
				`INSERT INTO positions (path, line, ch, rank) VALUES (?, ?, ?, ?)`,
				e.File, e.Cursor.Line, e.Cursor.Ch, rank,
			); err != nil {
				return fmt.Errorf("failed to insert position for %s: %w", e.File, err)
			}
		}
		return nil
	})
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
