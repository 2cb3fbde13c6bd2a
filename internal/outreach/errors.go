package outreach

import "errors"

var (
	// ErrNoActiveUser is returned when an operation needs a signed-in user.
	ErrNoActiveUser = errors.New("no active user")

	// ErrUnknownUser is returned when an owner ID does not resolve to a user.
	ErrUnknownUser = errors.New("unknown user")

	// ErrRecordNotFound is returned when a record ID is absent or owned by
	// someone other than the active user.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidStatus is returned for a status outside new/following/established.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidFollowUpDays is returned for an offset outside [0, MaxFollowUpDays].
	ErrInvalidFollowUpDays = errors.New("invalid follow-up days")

	// ErrEmptyName is returned when signing in with a blank name.
	ErrEmptyName = errors.New("name is required")

	// ErrConfirmationRequired is returned when a delete is not confirmed.
	ErrConfirmationRequired = errors.New("delete must be confirmed")
)
