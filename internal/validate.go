package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// errAbsent marks a document that decodes to "nothing stored"
var errAbsent = errors.New("state document is empty")

// IsAbsent reports whether a DecodeState error means nothing is stored
func IsAbsent(err error) bool {
	return errors.Is(err, errAbsent)
}

// DecodeState parses and validates a persisted state document. Any shape
// mismatch is an error; the caller decides to fall back to defaults.
func DecodeState(raw string) (ChatState, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ChatState{}, errAbsent
	}

	// Decode through raw fields first so a missing "sessions" key can be
	// told apart from an empty list.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return ChatState{}, fmt.Errorf("invalid JSON document: %w", err)
	}
	if _, ok := probe["sessions"]; !ok {
		return ChatState{}, fmt.Errorf("missing sessions field")
	}

	var state ChatState
	if err := json.Unmarshal(trimmed, &state); err != nil {
		return ChatState{}, fmt.Errorf("document does not match schema: %w", err)
	}
	if state.Sessions == nil {
		return ChatState{}, fmt.Errorf("sessions must be an array")
	}
	if err := ValidateState(&state); err != nil {
		return ChatState{}, err
	}
	if state.Preferences.Theme == "" {
		state.Preferences.Theme = ThemeDark
	}
	return state, nil
}

// EncodeState serializes the state document
func EncodeState(state ChatState) (string, error) {
	if state.Sessions == nil {
		state.Sessions = []ChatSession{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat state: %w", err)
	}
	return string(data), nil
}

// ValidateState checks the invariants a loaded document must satisfy.
// A currentSession pointing at a missing session is tolerated; lookups
// resolve it to no session.
func ValidateState(state *ChatState) error {
	if state.Preferences.Theme != "" && state.Preferences.Theme != ThemeDark {
		return fmt.Errorf("unsupported theme %q", state.Preferences.Theme)
	}

	seen := make(map[string]bool, len(state.Sessions))
	for i := range state.Sessions {
		s := &state.Sessions[i]
		if s.ID == "" {
			return fmt.Errorf("session %d: empty id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("session %s: duplicate id", s.ID)
		}
		seen[s.ID] = true
		if err := validateTimestamp(s.CreatedAt); err != nil {
			return fmt.Errorf("session %s: createdAt: %w", s.ID, err)
		}
		if err := validateTimestamp(s.UpdatedAt); err != nil {
			return fmt.Errorf("session %s: updatedAt: %w", s.ID, err)
		}
		for j := range s.Messages {
			if err := validateMessage(&s.Messages[j]); err != nil {
				return fmt.Errorf("session %s: message %d: %w", s.ID, j, err)
			}
		}
	}

	if cur := state.CurrentID(); cur != "" && !seen[cur] {
		LogDebug("Stored current session %s does not exist", cur)
	}
	return nil
}

func validateMessage(m *Message) error {
	if m.ID == "" {
		return fmt.Errorf("empty id")
	}
	if !m.Role.Valid() {
		return fmt.Errorf("invalid role %q", m.Role)
	}
	if err := validateTimestamp(m.Timestamp); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if len(m.Sources) > 0 && m.Role != RoleAssistant {
		return fmt.Errorf("sources on %s message", m.Role)
	}
	for k, src := range m.Sources {
		if !src.Status.Valid() {
			return fmt.Errorf("source %d: invalid status %q", k, src.Status)
		}
	}
	return nil
}

func validateTimestamp(ts string) error {
	if ts == "" {
		return fmt.Errorf("missing")
	}
	if _, err := ParseTime(ts); err != nil {
		return err
	}
	return nil
}
