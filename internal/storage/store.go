// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// Slot keys. Each slot holds one JSON document and is written in full on every
// change (last write wins).
const (
	// KeyRecords holds the ordered list of SoulRecords.
	KeyRecords = "records"

	// KeyUsers holds the ordered list of Users.
	KeyUsers = "users"

	// KeyCurrentUser holds the active User, or null.
	KeyCurrentUser = "current_user"
)

// ErrNotFound is returned by Get when a slot has never been written.
var ErrNotFound = errors.New("slot not found")

// Store defines the key/value persistence port used by the outreach core.
// This abstraction allows swapping storage backends (SQLite, in-memory, etc.)
// without changing the session layer.
type Store interface {
	// Get returns the raw value of a slot.
	// Returns ErrNotFound if the slot has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value of a slot.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
