package models

import "fmt"

// Status is the follow-up state of a SoulRecord.
type Status string

const (
	// StatusNew is the initial state of every record.
	StatusNew Status = "new"

	// StatusFollowing means follow-up visits are in progress.
	StatusFollowing Status = "following"

	// StatusEstablished is terminal: the contact is integrated and no longer
	// tracked for follow-up.
	StatusEstablished Status = "established"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusFollowing, StatusEstablished:
		return true
	}
	return false
}

// ParseStatus converts a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return status, nil
}

// SoulRecord represents one outreach contact.
// Records are owned exclusively by the user who created them.
type SoulRecord struct {
	// ID is the unique identifier for the record (UUID format).
	ID string `json:"id"`

	// UserID is the ID of the owning user.
	UserID string `json:"userId"`

	// Name, Phone and Location describe the contact.
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`

	// ChurchRecommended is the fellowship the contact was pointed to.
	ChurchRecommended string `json:"churchRecommended"`

	// DatePreached is the creation day. Immutable.
	DatePreached Date `json:"datePreached"`

	// FollowUpDays is the offset from DatePreached at which a follow-up is due.
	FollowUpDays int `json:"followUpDays"`

	// Status is the only mutable field.
	Status Status `json:"status"`

	Notes string `json:"notes"`
}

// DueDate returns the day on which the record's follow-up becomes due.
func (r SoulRecord) DueDate() Date {
	return r.DatePreached.AddDays(r.FollowUpDays)
}

// NewRecord holds the caller-supplied fields of a record before the store
// assigns its ID, owner, date and status.
type NewRecord struct {
	Name              string
	Phone             string
	Location          string
	ChurchRecommended string
	FollowUpDays      int
	Notes             string
}
