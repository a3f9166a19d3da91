package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when a session ID does not resolve
	ErrSessionNotFound = errors.New("session not found")
	// ErrMessageNotFound is returned when a message ID does not resolve
	ErrMessageNotFound = errors.New("message not found")
	// ErrNotAssistant is returned when sources are set on a non-assistant message
	ErrNotAssistant = errors.New("sources can only be attached to assistant messages")
	// ErrUnknownDriver is returned for an unsupported storage driver name
	ErrUnknownDriver = errors.New("unknown storage driver")
	// ErrStateUnreadable is returned by writes after the stored state could not be read
	ErrStateUnreadable = errors.New("stored chat state could not be read")
)

// StorageError represents errors opening or talking to a key/value backend
type StorageError struct {
	Backend string // "sqlite", "pebble", "redis", "memory"
	Op      string // "open", "get", "set", "delete", "close"
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents a persisted document that could not be decoded or
// failed schema validation
type ParseError struct {
	Source string // backend name
	Key    string // storage key
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PersistError is returned by store mutations whose full-state write failed.
// The in-memory state is left as it was before the call.
type PersistError struct {
	Op  string // store operation, e.g. "createSession"
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist error [%s] %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
