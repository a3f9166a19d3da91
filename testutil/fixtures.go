package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// SampleStateJSON is a state document in the shape the browser client writes
const SampleStateJSON = `{
  "sessions": [
    {
      "id": "session_1718000000000_abc123def",
      "title": "Amazon prices",
      "messages": [
        {
          "id": "msg_1718000001000_q1w2e3r4t",
          "content": "scrape laptop prices from amazon",
          "role": "user",
          "timestamp": "2024-06-10T06:13:21.000Z"
        },
        {
          "id": "msg_1718000002000_y5u6i7o8p",
          "content": "Here is what I found.",
          "role": "assistant",
          "timestamp": "2024-06-10T06:13:22.000Z",
          "sources": [
            {
              "id": "source_1718000002000_1",
              "url": "https://example-target-site.com",
              "title": "Target Website - Data Source",
              "favicon": "https://example-target-site.com/favicon.ico",
              "status": "success",
              "timestamp": "2024-06-10T06:13:22.000Z"
            }
          ]
        }
      ],
      "createdAt": "2024-06-10T06:13:20.000Z",
      "updatedAt": "2024-06-10T06:13:22.000Z"
    },
    {
      "id": "session_1717000000000_zzz999yyy",
      "title": "New Chat",
      "messages": [],
      "createdAt": "2024-05-29T16:26:40.000Z",
      "updatedAt": "2024-05-29T16:26:40.000Z"
    }
  ],
  "currentSession": "session_1718000000000_abc123def",
  "preferences": {
    "theme": "dark",
    "sidebarCollapsed": false
  }
}`

// CreateSQLiteFixture creates a SQLite database file holding value under key
func CreateSQLiteFixture(t *testing.T, dbPath, key, value string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(createItemTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	InsertItem(t, db, key, value)
}

// WriteFileFixture writes data to path, creating parent directories
func WriteFileFixture(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
}
