// Package memory provides an in-process implementation of storage.Store.
// Values are lost when the process exits; it backs tests and ephemeral runs.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mmynk/vcom/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps slots in a map.
type Store struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// New returns an empty Store.
func New() *Store {
	return &Store{slots: make(map[string][]byte)}
}

// Get returns a copy of the slot value.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.slots[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return slices.Clone(value), nil
}

// Put stores a copy of value.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = slices.Clone(value)
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
