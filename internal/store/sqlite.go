package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createPagesTable = `
CREATE TABLE IF NOT EXISTS pages (
	page_key   TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	fetched_on TEXT NOT NULL
);`

const createRevisionDatesTable = `
CREATE TABLE IF NOT EXISTS revision_dates (
	page_key TEXT NOT NULL,
	seq      INTEGER NOT NULL,
	date     TEXT NOT NULL,
	PRIMARY KEY (page_key, seq)
);`

// SQLiteBackend stores cache records in a single SQLite database. Dates
// keep their log position in the seq column so reads reproduce the exact
// ordered sequence.
type SQLiteBackend struct {
	conn *sql.DB
	path string
}

// NewSQLiteBackend opens (creating if needed) the database at dbPath and
// initializes the schema.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, stmt := range []string{createPagesTable, createRevisionDatesTable} {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &SQLiteBackend{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	return b.conn.Close()
}

// Path returns the database file path.
func (b *SQLiteBackend) Path(key string) string {
	return b.path
}

// Read returns the cached entry for the key, or nil if absent.
func (b *SQLiteBackend) Read(key string) (*Entry, error) {
	entry := &Entry{Key: key}

	err := b.conn.QueryRow(
		"SELECT title, fetched_on FROM pages WHERE page_key = ?", key,
	).Scan(&entry.Page, &entry.FetchedOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache record %s: %w", key, err)
	}

	rows, err := b.conn.Query(
		"SELECT date FROM revision_dates WHERE page_key = ? ORDER BY seq", key,
	)
	if err != nil {
		return nil, fmt.Errorf("read cache dates %s: %w", key, err)
	}
	defer rows.Close()

	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("read cache dates %s: %w", key, err)
		}
		entry.Dates = append(entry.Dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cache dates %s: %w", key, err)
	}

	return entry, nil
}

// Write replaces the key's record in one transaction.
func (b *SQLiteBackend) Write(entry *Entry) error {
	tx, err := b.conn.Begin()
	if err != nil {
		return &StorageWriteError{Path: b.path, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM revision_dates WHERE page_key = ?", entry.Key); err != nil {
		return &StorageWriteError{Path: b.path, Err: err}
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO pages (page_key, title, fetched_on) VALUES (?, ?, ?)",
		entry.Key, entry.Page, entry.FetchedOn,
	); err != nil {
		return &StorageWriteError{Path: b.path, Err: err}
	}

	stmt, err := tx.Prepare("INSERT INTO revision_dates (page_key, seq, date) VALUES (?, ?, ?)")
	if err != nil {
		return &StorageWriteError{Path: b.path, Err: err}
	}
	defer stmt.Close()

	for i, date := range entry.Dates {
		if _, err := stmt.Exec(entry.Key, i, date); err != nil {
			return &StorageWriteError{Path: b.path, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StorageWriteError{Path: b.path, Err: err}
	}
	return nil
}

// Delete removes the record for the key, if any.
func (b *SQLiteBackend) Delete(key string) error {
	tx, err := b.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM revision_dates WHERE page_key = ?", key); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM pages WHERE page_key = ?", key); err != nil {
		return err
	}
	return tx.Commit()
}
