package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/webscraper-chat/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	tests := []struct {
		name    string
		session *internal.ChatSession
		want    []string
		wantErr bool
	}{
		{
			name:    "basic session",
			session: internal.CreateTestSession("test1"),
			want: []string{
				"id: test1",
				"title: Test Conversation",
				"created_at:",
				"role: assistant",
				"status: success",
			},
			wantErr: false,
		},
		{
			name:    "empty session",
			session: internal.CreateTestSessionWithMessages("test2", []internal.Message{}),
			want:    []string{"id: test2", "messages: []"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &YAMLExporter{}

			err := exporter.Export(tt.session, &buf)
			if (err != nil) != tt.wantErr {
				t.Errorf("YAMLExporter.Export() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Output should contain %q\nOutput: %s", want, output)
				}
			}

			var decoded internal.ChatSession
			if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("Output is not valid YAML: %v", err)
			}
			if decoded.ID != tt.session.ID || len(decoded.Messages) != len(tt.session.Messages) {
				t.Errorf("decoded session = %+v", decoded)
			}
		})
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	exporter := &YAMLExporter{}
	if got := exporter.Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
