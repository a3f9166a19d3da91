package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ItemTable mirrors the key/value table browser profiles keep their
// local storage in.
const createItemTableSQL = `
CREATE TABLE IF NOT EXISTS ItemTable (
	key TEXT PRIMARY KEY,
	value TEXT
)`

// busyTimeoutMillis is how long a connection waits on a lock held by
// another process before failing with SQLITE_BUSY
const busyTimeoutMillis = 5000

func sqliteDSN(path string) string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)", path, busyTimeoutMillis)
}

// OpenDatabase opens (creating if needed) a SQLite database and ensures
// the ItemTable exists
func OpenDatabase(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := db.Exec(createItemTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ItemTable: %w", err)
	}

	return db, nil
}

// SQLiteKV is a KeyValueStore over the ItemTable of a SQLite database
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV wraps an open database. The caller must have created the
// ItemTable (OpenDatabase does).
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// OpenSQLiteKV opens the database file at path
func OpenSQLiteKV(path string) (*SQLiteKV, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "open", Err: err}
	}
	return NewSQLiteKV(db), nil
}

// Get returns the value stored under key
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var value sql.NullString
	err := s.db.QueryRow("SELECT value FROM ItemTable WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Backend: "sqlite", Op: "get", Err: err}
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

// Set overwrites the value stored under key
func (s *SQLiteKV) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO ItemTable (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "set", Err: err}
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *SQLiteKV) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM ItemTable WHERE key = ?", key); err != nil {
		return &StorageError{Backend: "sqlite", Op: "delete", Err: err}
	}
	return nil
}

// Keys lists every key with the given prefix
func (s *SQLiteKV) Keys(prefix string) ([]string, error) {
	// substr instead of LIKE: LIKE is case-insensitive and treats _ as a wildcard
	rows, err := s.db.Query(
		"SELECT key FROM ItemTable WHERE substr(key, 1, length(?1)) = ?1 AND value IS NOT NULL ORDER BY key",
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return keys, nil
}

// Close closes the underlying database
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

// Name identifies the backend in logs and errors
func (s *SQLiteKV) Name() string {
	return DriverSQLite
}
