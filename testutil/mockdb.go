package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

const createItemTableSQL = `
	CREATE TABLE IF NOT EXISTS ItemTable (
		key TEXT PRIMARY KEY,
		value TEXT
	)`

// CreateInMemoryDB creates an in-memory SQLite database with an empty ItemTable
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createItemTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create ItemTable: %v", err)
	}

	return db
}

// CreateTestDB creates an in-memory database holding one stored state document
func CreateTestDB(t *testing.T, key string) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)
	InsertItem(t, db, key, SampleStateJSON)
	return db
}

// InsertItem inserts a raw key/value row
func InsertItem(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	insertSQL := "INSERT INTO ItemTable (key, value) VALUES (?, ?)"
	if _, err := db.Exec(insertSQL, key, value); err != nil {
		t.Fatalf("Failed to insert item %s: %v", key, err)
	}
}
