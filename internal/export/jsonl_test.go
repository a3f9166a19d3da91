package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/webscraper-chat/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	tests := []struct {
		name      string
		session   *internal.ChatSession
		wantLines int
		want      []string
		wantErr   bool
	}{
		{
			name:      "empty session",
			session:   internal.CreateTestSessionWithMessages("test1", []internal.Message{}),
			wantLines: 0,
			wantErr:   false,
		},
		{
			name:      "session with messages",
			session:   internal.CreateTestSession("test2"),
			wantLines: 2,
			want: []string{
				`"session":"test2"`,
				`"role":"user"`,
				`"role":"assistant"`,
				`"status":"success"`,
			},
			wantErr: false,
		},
		{
			name: "message without timestamp",
			session: internal.CreateTestSessionWithMessages("test3", []internal.Message{
				{ID: "m1", Role: internal.RoleUser, Content: "Hello"},
			}),
			wantLines: 1,
			want: []string{
				`"role":"user"`,
				`"content":"Hello"`,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &JSONLExporter{}

			err := exporter.Export(tt.session, &buf)
			if (err != nil) != tt.wantErr {
				t.Errorf("JSONLExporter.Export() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			output := buf.String()
			if tt.wantLines == 0 {
				if output != "" {
					t.Errorf("Empty session should produce empty output, got: %q", output)
				}
				return
			}

			lines := strings.Split(strings.TrimSpace(output), "\n")
			if len(lines) != tt.wantLines {
				t.Fatalf("Expected %d lines, got %d", tt.wantLines, len(lines))
			}
			for i, line := range lines {
				var decoded map[string]any
				if err := json.Unmarshal([]byte(line), &decoded); err != nil {
					t.Errorf("Line %d is not valid JSON: %v\nLine: %s", i, err, line)
				}
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Output should contain %q\nOutput: %s", want, output)
				}
			}
		})
	}
}

func TestJSONLExporter_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	session := internal.CreateTestSessionWithMessages("test1", []internal.Message{
		{ID: "m1", Role: internal.RoleUser, Content: "Hello"},
	})
	if err := (&JSONLExporter{}).Export(session, &buf); err != nil {
		t.Fatal(err)
	}
	for _, unwanted := range []string{`"timestamp"`, `"sources"`} {
		if strings.Contains(buf.String(), unwanted) {
			t.Errorf("Output should not contain %s: %s", unwanted, buf.String())
		}
	}
}

func TestJSONLExporter_Extension(t *testing.T) {
	exporter := &JSONLExporter{}
	if got := exporter.Extension(); got != "jsonl" {
		t.Errorf("JSONLExporter.Extension() = %v, want jsonl", got)
	}
}
