package export

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iksnae/webscraper-chat/internal"
	"github.com/iksnae/webscraper-chat/testutil"
)

type failingExporter struct {
	failID string
}

func (f *failingExporter) Export(session *internal.ChatSession, w io.Writer) error {
	if session.ID == f.failID {
		return errors.New("encoder broke")
	}
	return (&JSONExporter{}).Export(session, w)
}

func (f *failingExporter) Extension() string { return "json" }

func TestWriteSessions(t *testing.T) {
	dir := filepath.Join(testutil.CreateTempDir(t), "export")
	sessions := []internal.ChatSession{
		*internal.CreateTestSession("session_2"),
		*internal.CreateTestSessionWithMessages("session_1", []internal.Message{}),
	}
	meta := IndexMetadata{
		Backend:     "sqlite",
		StorageKey:  internal.DefaultStorageKey,
		GeneratedAt: time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC),
	}

	index, err := WriteSessions(dir, sessions, "session_1", &MarkdownExporter{}, meta)
	if err != nil {
		t.Fatalf("WriteSessions() error = %v", err)
	}
	if index.Metadata.Format != "md" {
		t.Errorf("Metadata.Format = %s, want md", index.Metadata.Format)
	}
	if len(index.Sessions) != 2 {
		t.Fatalf("Sessions = %d, want 2", len(index.Sessions))
	}

	first := index.Sessions[0]
	if first.ID != "session_2" || first.File != "session_2.md" || first.MessageCount != 2 || first.SourceCount != 1 || first.Current {
		t.Errorf("first entry = %+v", first)
	}
	if !index.Sessions[1].Current {
		t.Errorf("session_1 should be marked current")
	}

	for _, e := range index.Sessions {
		if _, err := os.Stat(filepath.Join(dir, e.File)); err != nil {
			t.Errorf("exported file %s missing: %v", e.File, err)
		}
	}

	loaded, err := LoadIndex(dir)
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	if len(loaded.Sessions) != 2 || loaded.Metadata.Backend != "sqlite" || !loaded.Metadata.GeneratedAt.Equal(meta.GeneratedAt) {
		t.Errorf("LoadIndex() = %+v", loaded)
	}
}

func TestWriteSessions_SkipsFailedSession(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	sessions := []internal.ChatSession{
		*internal.CreateTestSession("good"),
		*internal.CreateTestSession("bad"),
	}

	index, err := WriteSessions(dir, sessions, "", &failingExporter{failID: "bad"}, IndexMetadata{})
	if err != nil {
		t.Fatalf("WriteSessions() error = %v", err)
	}
	if len(index.Sessions) != 1 || index.Sessions[0].ID != "good" {
		t.Errorf("Sessions = %+v, want only good", index.Sessions)
	}
}

func TestWriteIndex_Error(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	blocker := filepath.Join(dir, "file")
	testutil.WriteFileFixture(t, blocker, []byte("x"))

	err := WriteIndex(filepath.Join(blocker, "sub"), &SessionIndex{})
	var exportErr *internal.ExportError
	if !errors.As(err, &exportErr) {
		t.Errorf("WriteIndex() error = %v, want *ExportError", err)
	}
}

func TestLoadIndex_Missing(t *testing.T) {
	if _, err := LoadIndex(testutil.CreateTempDir(t)); !os.IsNotExist(err) {
		t.Errorf("LoadIndex() error = %v, want not exist", err)
	}
}
