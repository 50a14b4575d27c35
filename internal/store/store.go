// Package store defines the key-value persistence slot the model writes to
// and picks a backend for it.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("slot not found")

// Slot is a synchronous key-value store. Values are overwritten wholesale.
type Slot interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Opener builds a backend rooted at dir.
type Opener func(dir string) (Slot, error)

var openers = map[string]Opener{}

// Register makes a backend available to Open. Backends register themselves
// from init so the caller only needs a blank import.
func Register(name string, fn Opener) {
	openers[strings.ToLower(name)] = fn
}

// Open returns the named backend rooted at dir.
func Open(backend, dir string) (Slot, error) {
	fn, ok := openers[strings.ToLower(strings.TrimSpace(backend))]
	if !ok {
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
	s, err := fn(dir)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	return s, nil
}
