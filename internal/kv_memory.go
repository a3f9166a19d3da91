package internal

import (
	"sort"
	"strings"
	"sync"
)

// MemoryKV is a map-backed KeyValueStore. Nothing survives the process.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string

	// failWrites, when set, is returned by every Set (quota exceeded, disk full)
	failWrites error
	// failReads, when set, is returned by every Get (locked database, timeout)
	failReads error
}

// NewMemoryKV returns an empty in-memory store
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// FailWrites makes subsequent Set calls return err; nil restores writes
func (m *MemoryKV) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = err
}

// FailReads makes subsequent Get calls return err; nil restores reads
func (m *MemoryKV) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failReads = err
}

// Get returns the value stored under key
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads != nil {
		return "", false, &StorageError{Backend: DriverMemory, Op: "get", Err: m.failReads}
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set overwrites the value stored under key
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites != nil {
		return &StorageError{Backend: DriverMemory, Op: "set", Err: m.failWrites}
	}
	m.data[key] = value
	return nil
}

// Delete removes key
func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys lists every key with the given prefix, sorted
func (m *MemoryKV) Keys(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op
func (m *MemoryKV) Close() error {
	return nil
}

// Name identifies the backend in logs and errors
func (m *MemoryKV) Name() string {
	return DriverMemory
}
