package models

import (
	"strings"
	"time"
)

// User represents a campaign participant.
//
// Users are created implicitly on first sign-in and are never mutated or deleted.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name entered at sign-in.
	// Unique within the user set when compared case-insensitively.
	Name string `json:"name"`

	// JoinedAt is the time of the first sign-in.
	JoinedAt time.Time `json:"joinedAt"`
}

// HasName reports whether the user's name matches name, ignoring case.
func (u User) HasName(name string) bool {
	return strings.EqualFold(u.Name, name)
}
