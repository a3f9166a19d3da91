package internal

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDGenerator mints identifiers for new sessions, messages and sources
type IDGenerator interface {
	SessionID() string
	MessageID() string
	SourceID() string
}

// Clock returns the current time
type Clock func() time.Time

// DefaultIDs uses ULIDs for sessions, so session IDs sort by creation
// time, and random UUIDs for messages and sources.
type DefaultIDs struct{}

// SessionID returns "session_<ulid>"
func (DefaultIDs) SessionID() string {
	return "session_" + strings.ToLower(ulid.Make().String())
}

// MessageID returns "msg_<uuid>"
func (DefaultIDs) MessageID() string {
	return "msg_" + uuid.NewString()
}

// SourceID returns "source_<uuid>"
func (DefaultIDs) SourceID() string {
	return "source_" + uuid.NewString()
}
