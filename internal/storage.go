package internal

import (
	"fmt"
	"strings"
	"time"
)

// KeyValueStore is the synchronous persistence primitive the session store
// writes its state document through. Get reports found=false for a missing key.
type KeyValueStore interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
	Name() string
}

// KeyLister is implemented by backends that can enumerate their keys
type KeyLister interface {
	Keys(prefix string) ([]string, error)
}

// Storage driver names
const (
	DriverSQLite = "sqlite"
	DriverPebble = "pebble"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// KVOptions selects and configures a backend
type KVOptions struct {
	Driver string
	// Path is the sqlite file or pebble directory
	Path string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// Timeout bounds each network round trip (redis only)
	Timeout time.Duration
}

// OpenKeyValueStore opens the backend named by opts.Driver
func OpenKeyValueStore(opts KVOptions) (KeyValueStore, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	LogDebug("Opening %s storage (path=%q addr=%q)", driver, opts.Path, opts.RedisAddr)

	switch driver {
	case "", DriverSQLite:
		if opts.Path == "" {
			return nil, &StorageError{Backend: DriverSQLite, Op: "open", Err: fmt.Errorf("no database path configured")}
		}
		kv, err := OpenSQLiteKV(opts.Path)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case DriverPebble:
		if opts.Path == "" {
			return nil, &StorageError{Backend: DriverPebble, Op: "open", Err: fmt.Errorf("no data directory configured")}
		}
		kv, err := OpenPebbleKV(opts.Path)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case DriverRedis:
		kv, err := OpenRedisKV(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case DriverMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: sqlite, pebble, redis, memory)", ErrUnknownDriver, opts.Driver)
	}
}
