package internal

import (
	"time"
)

// TimeFormat matches the ISO-8601 strings the browser client writes
// (Date.prototype.toISOString): UTC with millisecond precision.
const TimeFormat = "2006-01-02T15:04:05.000Z"

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// SourceStatus is the scrape state of a cited website
type SourceStatus string

const (
	SourceLoading SourceStatus = "loading"
	SourceSuccess SourceStatus = "success"
	SourceError   SourceStatus = "error"
)

// Valid reports whether s is one of the known statuses
func (s SourceStatus) Valid() bool {
	switch s {
	case SourceLoading, SourceSuccess, SourceError:
		return true
	}
	return false
}

// SourceRecord is a website citation attached to an assistant message
type SourceRecord struct {
	ID        string       `json:"id" yaml:"id"`
	URL       string       `json:"url" yaml:"url"`
	Title     string       `json:"title" yaml:"title"`
	Favicon   string       `json:"favicon,omitempty" yaml:"favicon,omitempty"`
	Status    SourceStatus `json:"status" yaml:"status"`
	Timestamp string       `json:"timestamp" yaml:"timestamp"`
}

// Theme is the UI theme. Only the dark theme exists.
type Theme string

const ThemeDark Theme = "dark"

// Preferences is the small fixed configuration blob kept with the chat state
type Preferences struct {
	Theme            Theme `json:"theme" yaml:"theme"`
	SidebarCollapsed bool  `json:"sidebarCollapsed" yaml:"sidebar_collapsed"`
}

// DefaultPreferences returns the preferences of a fresh profile
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeDark}
}

// ChatState is the whole persisted document
type ChatState struct {
	Sessions       []ChatSession `json:"sessions" yaml:"sessions"`
	CurrentSession *string       `json:"currentSession" yaml:"current_session"`
	Preferences    Preferences   `json:"preferences" yaml:"preferences"`
}

// DefaultChatState returns the empty state used on first load and after
// a corrupt document is discarded.
func DefaultChatState() ChatState {
	return ChatState{
		Sessions:       []ChatSession{},
		CurrentSession: nil,
		Preferences:    DefaultPreferences(),
	}
}

// CurrentID returns the current session ID or "" when none is selected
func (cs *ChatState) CurrentID() string {
	if cs.CurrentSession == nil {
		return ""
	}
	return *cs.CurrentSession
}

// findSession returns the index of the session with the given ID or -1
func (cs *ChatState) findSession(id string) int {
	for i := range cs.Sessions {
		if cs.Sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (cs ChatState) clone() ChatState {
	out := ChatState{
		Sessions:    make([]ChatSession, len(cs.Sessions)),
		Preferences: cs.Preferences,
	}
	for i, s := range cs.Sessions {
		out.Sessions[i] = s.clone()
	}
	if cs.CurrentSession != nil {
		id := *cs.CurrentSession
		out.CurrentSession = &id
	}
	return out
}

// FormatTime renders t the way timestamps are persisted
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// ParseTime parses a persisted timestamp
func ParseTime(ts string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, ts)
}

// StringPtr returns a pointer to a copy of s
func StringPtr(s string) *string {
	return &s
}
