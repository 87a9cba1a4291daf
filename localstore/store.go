// Package localstore is the on-device persistence port: a small key-value
// surface that stands in for the browser's local storage. Implementations
// exist for plain files, SQLite, and memory (for tests).
package localstore

import "errors"

// ErrNoValue is returned by Get when the key has never been set.
var ErrNoValue = errors.New("localstore: no value")

// Store persists small serialized blobs per key. Implementations must be
// safe for concurrent use.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
