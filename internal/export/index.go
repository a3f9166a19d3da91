package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iksnae/webscraper-chat/internal"
	"gopkg.in/yaml.v3"
)

// IndexFile is the name of the index written next to exported sessions
const IndexFile = "sessions.yaml"

// IndexMetadata describes where an export came from
type IndexMetadata struct {
	Backend     string    `yaml:"backend"`
	StorageKey  string    `yaml:"storage_key"`
	Format      string    `yaml:"format"`
	GeneratedAt time.Time `yaml:"generated_at"`
}

// IndexEntry summarises one exported session
type IndexEntry struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	File         string `yaml:"file"`
	CreatedAt    string `yaml:"created_at,omitempty"`
	UpdatedAt    string `yaml:"updated_at,omitempty"`
	MessageCount int    `yaml:"message_count"`
	SourceCount  int    `yaml:"source_count,omitempty"`
	Current      bool   `yaml:"current,omitempty"`
}

// SessionIndex is the YAML index of an export directory
type SessionIndex struct {
	Sessions []IndexEntry  `yaml:"sessions"`
	Metadata IndexMetadata `yaml:"metadata"`
}

// SessionFileName returns the file name a session is exported to
func SessionFileName(session *internal.ChatSession, ext string) string {
	return fmt.Sprintf("%s.%s", session.ID, ext)
}

// WriteIndex writes index to dir/sessions.yaml
func WriteIndex(dir string, index *SessionIndex) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &internal.ExportError{Format: "yaml", Path: dir, Err: err}
	}
	path := filepath.Join(dir, IndexFile)
	data, err := yaml.Marshal(index)
	if err != nil {
		return &internal.ExportError{Format: "yaml", Path: path, Err: fmt.Errorf("failed to marshal index: %w", err)}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &internal.ExportError{Format: "yaml", Path: path, Err: err}
	}
	return nil
}

// LoadIndex reads dir/sessions.yaml
func LoadIndex(dir string) (*SessionIndex, error) {
	data, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, err
	}
	var index SessionIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}
	return &index, nil
}

// WriteSessions exports each session to its own file in dir and writes the
// index. A session that fails to export is logged and left out of the index.
func WriteSessions(dir string, sessions []internal.ChatSession, currentID string, exp Exporter, meta IndexMetadata) (*SessionIndex, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &internal.ExportError{Format: exp.Extension(), Path: dir, Err: err}
	}

	meta.Format = exp.Extension()
	index := &SessionIndex{
		Sessions: make([]IndexEntry, 0, len(sessions)),
		Metadata: meta,
	}

	for i := range sessions {
		session := &sessions[i]
		name := SessionFileName(session, exp.Extension())
		if err := writeSessionFile(filepath.Join(dir, name), session, exp); err != nil {
			internal.LogWarn("Failed to export session %s: %v", session.ID, err)
			continue
		}
		index.Sessions = append(index.Sessions, IndexEntry{
			ID:           session.ID,
			Title:        session.Title,
			File:         name,
			CreatedAt:    session.CreatedAt,
			UpdatedAt:    session.UpdatedAt,
			MessageCount: len(session.Messages),
			SourceCount:  countSources(session),
			Current:      session.ID == currentID,
		})
	}

	if err := WriteIndex(dir, index); err != nil {
		return nil, err
	}
	return index, nil
}

func writeSessionFile(path string, session *internal.ChatSession, exp Exporter) error {
	f, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exp.Extension(), Path: path, Err: err}
	}
	if err := exp.Export(session, f); err != nil {
		_ = f.Close()
		return &internal.ExportError{Format: exp.Extension(), Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &internal.ExportError{Format: exp.Extension(), Path: path, Err: err}
	}
	return nil
}

func countSources(session *internal.ChatSession) int {
	n := 0
	for _, m := range session.Messages {
		n += len(m.Sources)
	}
	return n
}
