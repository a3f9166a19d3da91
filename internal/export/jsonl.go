package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/webscraper-chat/internal"
)

// JSONLExporter exports sessions in JSONL format (one message per line)
type JSONLExporter struct{}

type jsonlLine struct {
	Session   string                  `json:"session"`
	ID        string                  `json:"id"`
	Role      internal.Role           `json:"role"`
	Content   string                  `json:"content"`
	Timestamp string                  `json:"timestamp,omitempty"`
	Sources   []internal.SourceRecord `json:"sources,omitempty"`
}

// Export exports a session to JSONL format
func (e *JSONLExporter) Export(session *internal.ChatSession, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range session.Messages {
		line := jsonlLine{
			Session:   session.ID,
			ID:        msg.ID,
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
			Sources:   msg.Sources,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
