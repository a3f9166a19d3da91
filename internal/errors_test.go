package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := &StorageError{
		Backend: "sqlite",
		Op:      "open",
		Err:     originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "storage error") {
		t.Errorf("StorageError.Error() should contain 'storage error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "sqlite") {
		t.Errorf("StorageError.Error() should contain backend, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("StorageError.Unwrap() should return original error")
	}
}

func TestParseError(t *testing.T) {
	originalErr := errors.New("invalid JSON")
	err := &ParseError{
		Source: "memory",
		Key:    "webscraper-ai-chat-state",
		Err:    originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "parse error") {
		t.Errorf("ParseError.Error() should contain 'parse error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "webscraper-ai-chat-state") {
		t.Errorf("ParseError.Error() should contain key, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("ParseError.Unwrap() should return original error")
	}
}

func TestPersistError(t *testing.T) {
	originalErr := errors.New("quota exceeded")
	err := &PersistError{
		Op:  "addMessage",
		Key: "state",
		Err: originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "persist error") {
		t.Errorf("PersistError.Error() should contain 'persist error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "addMessage") {
		t.Errorf("PersistError.Error() should contain op, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("PersistError.Unwrap() should return original error")
	}

	var target *PersistError
	wrapped := errors.Join(errors.New("outer"), err)
	if !errors.As(wrapped, &target) {
		t.Error("errors.As should find PersistError in a wrapped chain")
	}
}

func TestExportError(t *testing.T) {
	originalErr := errors.New("write failed")
	err := &ExportError{
		Format: "jsonl",
		Path:   "/output/file.jsonl",
		Err:    originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "export error") {
		t.Errorf("ExportError.Error() should contain 'export error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "jsonl") {
		t.Errorf("ExportError.Error() should contain format, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("ExportError.Unwrap() should return original error")
	}
}
