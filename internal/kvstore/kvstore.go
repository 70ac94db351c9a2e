// ABOUTME: Key-value store abstraction for durable persistence
// ABOUTME: Backends: badger (default), sqlite, and in-memory for tests

package kvstore

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// ErrQuotaExceeded is returned when the store cannot accept more data.
// The persistence manager recovers by evicting non-essential keys.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is the durable key-value interface the persistence layer writes
// against. Values are opaque bytes; all serialization happens above.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}
