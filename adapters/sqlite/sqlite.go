// Package sqlite provides SQLite implementations of the catalog ports.
// The catalog (games, tags, co-occurrence counts) is written offline by the
// crawler; this process only reads it.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a SQLite database connection.
type DB struct {
	*sql.DB
}

// Open creates a new SQLite database connection.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	return &DB{DB: db}, nil
}

// Init creates the catalog tables if they do not exist. The crawler normally
// owns the schema; this keeps fresh databases and tests usable.
func (db *DB) Init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		appid          INTEGER NOT NULL UNIQUE,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		image_url      TEXT NOT NULL DEFAULT '',
		review_count   INTEGER NOT NULL DEFAULT 0,
		korean_support INTEGER NOT NULL DEFAULT 0,
		is_free        INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS tags (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);
	CREATE TABLE IF NOT EXISTS game_tags (
		game_id INTEGER NOT NULL REFERENCES games(id),
		tag_id  INTEGER NOT NULL REFERENCES tags(id),
		PRIMARY KEY (game_id, tag_id)
	);
	CREATE TABLE IF NOT EXISTS tag_cooccurrence (
		tag1  TEXT NOT NULL,
		tag2  TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (tag1, tag2)
	);
	CREATE INDEX IF NOT EXISTS idx_game_tags_tag ON game_tags(tag_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	s := "?"
	for i := 1; i < n; i++ {
		s += ",?"
	}
	return s
}
