package memstore

import (
	"errors"
	"sync"

	"github.com/Makepad-fr/tada/internal/store"
)

func init() {
	store.Register(store.BackendMemory, func(string) (store.Slot, error) { return New(), nil })
}

// Store keeps slots in process memory. Nothing survives a restart.
type Store struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailWrites makes every Set return an error; used to exercise the
	// model's write-failure path.
	FailWrites bool
}

// ErrWriteFailed is returned by Set when FailWrites is on.
var ErrWriteFailed = errors.New("memstore: write failed")

func New() *Store {
	return &Store{data: map[string][]byte{}}
}

func (s *Store) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return ErrWriteFailed
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Close() error { return nil }
