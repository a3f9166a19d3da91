package internal

import (
	"errors"

	"github.com/cockroachdb/pebble"
)

// PebbleKV is a KeyValueStore over a Pebble LSM directory
type PebbleKV struct {
	db *pebble.DB
}

// OpenPebbleKV opens (or creates) a Pebble database in dir
func OpenPebbleKV(dir string) (*PebbleKV, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, &StorageError{Backend: DriverPebble, Op: "open", Err: err}
	}
	LogDebug("Pebble store opened at %s", dir)
	return &PebbleKV{db: db}, nil
}

// Get returns the value stored under key
func (p *PebbleKV) Get(key string) (string, bool, error) {
	val, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Backend: DriverPebble, Op: "get", Err: err}
	}
	// val is only valid until closer.Close
	out := string(val)
	if err := closer.Close(); err != nil {
		return "", false, &StorageError{Backend: DriverPebble, Op: "get", Err: err}
	}
	return out, true, nil
}

// Set overwrites the value stored under key with a synced write
func (p *PebbleKV) Set(key, value string) error {
	if err := p.db.Set([]byte(key), []byte(value), pebble.Sync); err != nil {
		return &StorageError{Backend: DriverPebble, Op: "set", Err: err}
	}
	return nil
}

// Delete removes key
func (p *PebbleKV) Delete(key string) error {
	if err := p.db.Delete([]byte(key), pebble.Sync); err != nil {
		return &StorageError{Backend: DriverPebble, Op: "delete", Err: err}
	}
	return nil
}

// Keys lists every key with the given prefix
func (p *PebbleKV) Keys(prefix string) ([]string, error) {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: prefixUpperBound([]byte(prefix)),
	})
	if err != nil {
		return nil, &StorageError{Backend: DriverPebble, Op: "iterate", Err: err}
	}
	defer iter.Close()

	var keys []string
	for iter.First(); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	return keys, iter.Error()
}

// Close flushes and closes the database
func (p *PebbleKV) Close() error {
	return p.db.Close()
}

// Name identifies the backend in logs and errors
func (p *PebbleKV) Name() string {
	return DriverPebble
}

// prefixUpperBound returns the smallest key greater than every key with
// the given prefix, or nil when there is none
func prefixUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
