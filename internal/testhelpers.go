package internal

import (
	"fmt"
	"sync"
	"time"
)

// SequentialIDs mints predictable identifiers for tests
type SequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (g *SequentialIDs) next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s_%d", prefix, g.n)
}

// SessionID returns "session_<n>"
func (g *SequentialIDs) SessionID() string { return g.next("session") }

// MessageID returns "msg_<n>"
func (g *SequentialIDs) MessageID() string { return g.next("msg") }

// SourceID returns "source_<n>"
func (g *SequentialIDs) SourceID() string { return g.next("source") }

// SteppingClock returns a clock that starts at start and advances by step
// on every call
func SteppingClock(start time.Time, step time.Duration) Clock {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := now
		now = now.Add(step)
		return t
	}
}

// NewTestStore returns a store over a fresh MemoryKV with predictable IDs
// and a clock stepping one second per call
func NewTestStore() (*SessionStore, *MemoryKV) {
	kv := NewMemoryKV()
	store := NewSessionStore(kv,
		WithIDGenerator(&SequentialIDs{}),
		WithClock(SteppingClock(time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC), time.Second)),
	)
	return store, kv
}

// CreateTestSession creates a test session with sample data
func CreateTestSession(id string) *ChatSession {
	return &ChatSession{
		ID:    id,
		Title: "Test Conversation",
		Messages: []Message{
			{
				ID:        id + "_m1",
				Role:      RoleUser,
				Content:   "Hello, how are you?",
				Timestamp: "2024-06-10T06:13:21.000Z",
			},
			{
				ID:        id + "_m2",
				Role:      RoleAssistant,
				Content:   "I'm doing well, thank you!",
				Timestamp: "2024-06-10T06:13:22.000Z",
				Sources: []SourceRecord{
					{
						ID:        id + "_s1",
						URL:       "https://example-target-site.com",
						Title:     "Target Website - Data Source",
						Status:    SourceSuccess,
						Timestamp: "2024-06-10T06:13:22.000Z",
					},
				},
			},
		},
		CreatedAt: "2024-06-10T06:13:20.000Z",
		UpdatedAt: "2024-06-10T06:13:22.000Z",
	}
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) *ChatSession {
	return &ChatSession{
		ID:        id,
		Title:     DefaultSessionTitle,
		Messages:  messages,
		CreatedAt: "2024-06-10T06:13:20.000Z",
		UpdatedAt: "2024-06-10T06:13:20.000Z",
	}
}
