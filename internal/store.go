package internal

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultStorageKey is the single key the state document lives under
const DefaultStorageKey = "webscraper-ai-chat-state"

// SessionStore is the single source of truth for the chat state. Every
// mutation builds the next state, writes the whole document and only then
// replaces the in-memory copy, so a failed write leaves nothing half-applied.
//
// The store assumes one writer per backend. Two processes sharing a
// backend race: the last full write wins and nothing is merged.
type SessionStore struct {
	mu sync.Mutex

	kv      KeyValueStore
	key     string
	now     Clock
	ids     IDGenerator
	metrics *StoreMetrics

	state ChatState
	// readErr is set when the last load could not read the backend. Writes
	// are refused until a load succeeds so the stored document is never
	// replaced by one built from an empty stand-in.
	readErr error
	// attachments are keyed by message ID and never persisted
	attachments map[string]*Attachment
}

// StoreOption customizes a SessionStore
type StoreOption func(*SessionStore)

// WithClock overrides the time source
func WithClock(c Clock) StoreOption {
	return func(s *SessionStore) { s.now = c }
}

// WithIDGenerator overrides identifier minting
func WithIDGenerator(g IDGenerator) StoreOption {
	return func(s *SessionStore) { s.ids = g }
}

// WithStorageKey overrides the key the document is stored under
func WithStorageKey(key string) StoreOption {
	return func(s *SessionStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithMetrics attaches a metrics recorder
func WithMetrics(m *StoreMetrics) StoreOption {
	return func(s *SessionStore) { s.metrics = m }
}

// NewSessionStore creates a store over kv holding the default empty state.
// Call LoadState to read what is persisted.
func NewSessionStore(kv KeyValueStore, opts ...StoreOption) *SessionStore {
	s := &SessionStore{
		kv:          kv,
		key:         DefaultStorageKey,
		now:         time.Now,
		ids:         DefaultIDs{},
		state:       DefaultChatState(),
		attachments: make(map[string]*Attachment),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key
func (s *SessionStore) Key() string {
	return s.key
}

// Metrics returns the attached metrics recorder, which may be nil
func (s *SessionStore) Metrics() *StoreMetrics {
	return s.metrics
}

// Backend returns the backing store's name
func (s *SessionStore) Backend() string {
	return s.kv.Name()
}

// LoadState reads the persisted document. A missing document yields the
// default state and a malformed one is logged and discarded. When the
// backend cannot be read at all, the default state is returned and the
// store refuses writes until a later load succeeds. It never fails; use
// Load to see the read error.
func (s *SessionStore) LoadState() ChatState {
	state, _ := s.Load()
	return state
}

// Load is LoadState that also reports a backend read failure as a
// *StorageError. Malformed documents are still discarded without error.
func (s *SessionStore) Load() (ChatState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.readState()
	s.readErr = err
	s.state = state
	s.attachments = make(map[string]*Attachment)
	s.metrics.ObserveOp("loadState", err)
	return s.state.clone(), err
}

func (s *SessionStore) readState() (ChatState, error) {
	raw, found, err := s.kv.Get(s.key)
	if err != nil {
		LogError("Failed to read chat state: %v", err)
		var serr *StorageError
		if !errors.As(err, &serr) {
			err = &StorageError{Backend: s.kv.Name(), Op: "get", Err: err}
		}
		return DefaultChatState(), err
	}
	if !found {
		LogDebug("No stored chat state under %s, starting empty", s.key)
		return DefaultChatState(), nil
	}

	state, err := DecodeState(raw)
	if errors.Is(err, errAbsent) {
		return DefaultChatState(), nil
	}
	if err != nil {
		perr := &ParseError{Source: s.kv.Name(), Key: s.key, Err: err}
		LogWarn("Discarding stored chat state: %v", perr)
		s.metrics.ObserveCorruptLoad()
		return DefaultChatState(), nil
	}

	LogDebug("Loaded %d session(s) from %s", len(state.Sessions), s.kv.Name())
	return state, nil
}

// persist writes next and adopts it as the current state on success
func (s *SessionStore) persist(op string, next ChatState) error {
	if s.readErr != nil {
		err := fmt.Errorf("%w: %v", ErrStateUnreadable, s.readErr)
		s.metrics.ObserveOp(op, err)
		LogError("Refusing to persist chat state (%s): %v", op, err)
		return &PersistError{Op: op, Key: s.key, Err: err}
	}

	doc, err := EncodeState(next)
	if err == nil {
		err = s.kv.Set(s.key, doc)
	}
	if err != nil {
		s.metrics.ObservePersistError(s.kv.Name())
		s.metrics.ObserveOp(op, err)
		LogError("Failed to persist chat state (%s): %v", op, err)
		return &PersistError{Op: op, Key: s.key, Err: err}
	}

	s.state = next
	s.metrics.ObserveOp(op, nil)
	s.metrics.ObserveState(len(next.Sessions), len(doc))
	return nil
}

func (s *SessionStore) timestamp() string {
	return FormatTime(s.now())
}

// createInto prepends a fresh session to state and selects it
func (s *SessionStore) createInto(state *ChatState, title string) string {
	if strings.TrimSpace(title) == "" {
		title = DefaultSessionTitle
	}
	ts := s.timestamp()
	session := ChatSession{
		ID:        s.ids.SessionID(),
		Title:     title,
		Messages:  []Message{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	state.Sessions = append([]ChatSession{session}, state.Sessions...)
	state.CurrentSession = StringPtr(session.ID)
	return session.ID
}

// CreateSession inserts a new session at the front and makes it current.
// An empty title becomes "New Chat".
func (s *SessionStore) CreateSession(title string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	id := s.createInto(&next, title)
	if err := s.persist("createSession", next); err != nil {
		return "", err
	}
	LogDebug("Created session %s", id)
	return id, nil
}

// AddMessage appends a message to the current session.
//
// When no session is current, or the current ID no longer resolves, a new
// "New Chat" session is created first and the message lands in it. Both
// changes are written together.
func (s *SessionStore) AddMessage(in MessageInput) (Message, error) {
	if !in.Role.Valid() {
		return Message{}, fmt.Errorf("invalid role %q", in.Role)
	}
	if len(in.Sources) > 0 && in.Role != RoleAssistant {
		return Message{}, ErrNotAssistant
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	idx := next.findSession(next.CurrentID())
	if idx < 0 {
		id := s.createInto(&next, DefaultSessionTitle)
		LogDebug("No current session, created %s for incoming message", id)
		idx = 0
	}

	ts := s.timestamp()
	msg := Message{
		ID:        s.ids.MessageID(),
		Content:   in.Content,
		Role:      in.Role,
		Timestamp: ts,
	}
	if len(in.Sources) > 0 {
		msg.Sources = append([]SourceRecord(nil), in.Sources...)
	}

	session := &next.Sessions[idx]
	session.Messages = append(session.Messages, msg)
	session.UpdatedAt = ts

	if err := s.persist("addMessage", next); err != nil {
		return Message{}, err
	}

	if in.Image != nil {
		s.attachments[msg.ID] = in.Image
		msg.Image = in.Image
	}
	return msg.clone(), nil
}

// SetCurrentSession selects id, or clears the selection when id is nil.
// The ID is not checked; an unknown ID behaves as "no session selected".
func (s *SessionStore) SetCurrentSession(id *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if id == nil {
		next.CurrentSession = nil
	} else {
		next.CurrentSession = StringPtr(*id)
	}
	return s.persist("setCurrentSession", next)
}

// DeleteSession removes the session with the given ID. Deleting an unknown
// ID is a no-op. If the deleted session was current, the first remaining
// session becomes current (or none when the list is empty).
func (s *SessionStore) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	var removed *ChatSession
	kept := make([]ChatSession, 0, len(next.Sessions))
	for i := range next.Sessions {
		if next.Sessions[i].ID == id {
			removed = &next.Sessions[i]
			continue
		}
		kept = append(kept, next.Sessions[i])
	}
	next.Sessions = kept

	if next.CurrentID() == id {
		if len(kept) > 0 {
			next.CurrentSession = StringPtr(kept[0].ID)
		} else {
			next.CurrentSession = nil
		}
	}

	if err := s.persist("deleteSession", next); err != nil {
		return err
	}
	if removed != nil {
		for _, m := range removed.Messages {
			delete(s.attachments, m.ID)
		}
		LogDebug("Deleted session %s", id)
	}
	return nil
}

// GetCurrentSession returns the current session. ok is false when none is
// selected or the selected ID does not resolve.
func (s *SessionStore) GetCurrentSession() (ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.findSession(s.state.CurrentID())
	if idx < 0 {
		return ChatSession{}, false
	}
	return s.withAttachments(s.state.Sessions[idx]), true
}

// Session returns the session with the given ID
func (s *SessionStore) Session(id string) (ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.findSession(id)
	if idx < 0 {
		return ChatSession{}, false
	}
	return s.withAttachments(s.state.Sessions[idx]), true
}

// Sessions returns the sessions, newest first, whose title contains filter
// (case-insensitive). An empty filter returns all of them.
func (s *SessionStore) Sessions(filter string) []ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(filter))
	out := make([]ChatSession, 0, len(s.state.Sessions))
	for _, session := range s.state.Sessions {
		if needle != "" && !strings.Contains(strings.ToLower(session.Title), needle) {
			continue
		}
		out = append(out, session.clone())
	}
	return out
}

// State returns a copy of the persisted document
func (s *SessionStore) State() ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// UpdateSources replaces the sources of an assistant message. This is the
// only change a message accepts after it is appended; updatedAt is left alone.
func (s *SessionStore) UpdateSources(sessionID, messageID string, sources []SourceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	si := next.findSession(sessionID)
	if si < 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	session := &next.Sessions[si]
	mi := session.findMessage(messageID)
	if mi < 0 {
		return fmt.Errorf("%w: %s", ErrMessageNotFound, messageID)
	}
	if session.Messages[mi].Role != RoleAssistant {
		return ErrNotAssistant
	}
	for _, src := range sources {
		if !src.Status.Valid() {
			return fmt.Errorf("invalid source status %q", src.Status)
		}
	}

	session.Messages[mi].Sources = append([]SourceRecord(nil), sources...)
	return s.persist("updateSources", next)
}

// SetPreferences stores UI preferences. The theme is always dark.
func (s *SessionStore) SetPreferences(p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Theme = ThemeDark
	next := s.state.clone()
	next.Preferences = p
	return s.persist("setPreferences", next)
}

// Clear resets the store to the default empty state
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist("clear", DefaultChatState()); err != nil {
		return err
	}
	s.attachments = make(map[string]*Attachment)
	return nil
}

// Attachment returns the transient attachment of a message
func (s *SessionStore) Attachment(messageID string) (*Attachment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attachments[messageID]
	return a, ok
}

func (s *SessionStore) withAttachments(session ChatSession) ChatSession {
	out := session.clone()
	for i := range out.Messages {
		if a, ok := s.attachments[out.Messages[i].ID]; ok {
			out.Messages[i].Image = a
		}
	}
	return out
}
