package internal

import (
	"sort"
	"strings"
	"testing"
)

func TestDefaultIDs(t *testing.T) {
	ids := DefaultIDs{}
	tests := []struct {
		name   string
		next   func() string
		prefix string
	}{
		{"session", ids.SessionID, "session_"},
		{"message", ids.MessageID, "msg_"},
		{"source", ids.SourceID, "source_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make(map[string]bool)
			for i := 0; i < 100; i++ {
				id := tt.next()
				if !strings.HasPrefix(id, tt.prefix) {
					t.Fatalf("id %q should start with %q", id, tt.prefix)
				}
				if seen[id] {
					t.Fatalf("duplicate id %q", id)
				}
				seen[id] = true
			}
		})
	}
}

func TestDefaultIDs_SessionIDsSortByCreation(t *testing.T) {
	var got []string
	for i := 0; i < 50; i++ {
		got = append(got, DefaultIDs{}.SessionID())
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("session IDs should sort in creation order: %v", got)
	}
}

func TestSequentialIDs(t *testing.T) {
	ids := &SequentialIDs{}
	got := []string{ids.SessionID(), ids.MessageID(), ids.SourceID()}
	want := []string{"session_1", "msg_2", "source_3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("id %d = %s, want %s", i, got[i], want[i])
		}
	}
}
