package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/vcom/internal/calculator"
	"github.com/mmynk/vcom/internal/metrics"
	"github.com/mmynk/vcom/internal/models"
	"github.com/mmynk/vcom/internal/storage"
)

// Session resolves the active user and orchestrates every mutation of users
// and records, writing each changed slot back to the store.
//
// All methods are safe for concurrent use; operations are serialized so that
// each one observes the complete effect of the previous.
type Session struct {
	mu sync.Mutex

	store   storage.Store
	records *RecordStore
	users   []models.User
	current *models.User

	now      func() time.Time
	location *time.Location
	newID    func() string
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLocation sets the zone in which "today" is evaluated.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) { s.location = loc }
}

// WithIDGenerator overrides the ID source for users and records.
func WithIDGenerator(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// NewSession restores state from store and returns a ready Session.
// Unreadable or malformed slots start empty; restoring never fails.
func NewSession(ctx context.Context, store storage.Store, opts ...Option) *Session {
	s := &Session{
		store:    store,
		now:      time.Now,
		location: time.Local,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap := loadSnapshot(ctx, store)
	s.users = snap.users
	s.current = snap.current

	// knownUser runs inside RecordStore calls, which are only made while s.mu is held.
	knownUser := func(id string) bool {
		return slices.ContainsFunc(s.users, func(u models.User) bool { return u.ID == id })
	}
	s.records = NewRecordStore(snap.records, knownUser, s.Today, func(ctx context.Context, records []models.SoulRecord) {
		if records == nil {
			records = []models.SoulRecord{}
		}
		s.persist(ctx, storage.KeyRecords, records)
	})
	s.records.newID = s.newID

	return s
}

// Today returns the current calendar day in the session's location.
func (s *Session) Today() models.Date {
	return models.DateOf(s.now().In(s.location))
}

// SignIn makes the user with the given name active, creating it on first use.
// Names are trimmed and matched case-insensitively.
func (s *Session) SignIn(ctx context.Context, name string) (models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.users, func(u models.User) bool { return u.HasName(name) })
	var user models.User
	if idx >= 0 {
		user = s.users[idx]
		metrics.SignIns.WithLabelValues("existing").Inc()
	} else {
		user = models.User{
			ID:       s.newID(),
			Name:     name,
			JoinedAt: s.now().UTC(),
		}
		s.users = append(slices.Clone(s.users), user)
		s.persist(ctx, storage.KeyUsers, s.users)
		metrics.SignIns.WithLabelValues("created").Inc()
		slog.Info("User created", "user_id", user.ID, "name", user.Name)
	}

	s.current = &user
	s.persist(ctx, storage.KeyCurrentUser, s.current)
	return user, nil
}

// SignOut clears the active user. The user and their records are kept.
func (s *Session) SignOut(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.persist(ctx, storage.KeyCurrentUser, s.current)
}

// CurrentUser returns the active user, if any.
func (s *Session) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// Users returns every known user in join order.
func (s *Session) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.users)
}

// AddRecord records a new contact for the active user.
func (s *Session) AddRecord(ctx context.Context, in models.NewRecord) (models.SoulRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.SoulRecord{}, ErrNoActiveUser
	}
	return s.records.Add(ctx, in, s.current.ID)
}

// DeleteRecord removes one of the active user's records. The caller must pass
// confirmed=true; otherwise nothing changes. It reports whether a record was
// removed: repeating a delete, or naming someone else's record, removes nothing.
func (s *Session) DeleteRecord(ctx context.Context, id string, confirmed bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false, ErrNoActiveUser
	}
	if !confirmed {
		return false, ErrConfirmationRequired
	}
	if _, ok := s.ownedRecord(id); !ok {
		return false, nil
	}
	return s.records.Delete(ctx, id), nil
}

// UpdateStatus moves one of the active user's records to status.
func (s *Session) UpdateStatus(ctx context.Context, id string, status models.Status) (models.SoulRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.SoulRecord{}, ErrNoActiveUser
	}
	if !status.Valid() {
		return models.SoulRecord{}, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}
	if _, ok := s.ownedRecord(id); !ok {
		return models.SoulRecord{}, fmt.Errorf("%s: %w", id, ErrRecordNotFound)
	}

	record, ok, err := s.records.UpdateStatus(ctx, id, status)
	if err != nil {
		return models.SoulRecord{}, err
	}
	if !ok {
		return models.SoulRecord{}, fmt.Errorf("%s: %w", id, ErrRecordNotFound)
	}
	return record, nil
}

// FollowUpList returns the active user's records in follow-up order together
// with the day the ordering was computed for.
func (s *Session) FollowUpList() ([]models.SoulRecord, models.Date, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, models.Date{}, ErrNoActiveUser
	}
	today := s.Today()
	return calculator.SortForFollowUp(s.records.AllFor(s.current.ID), today), today, nil
}

// Stats computes the active user's counters from the current state.
func (s *Session) Stats() (models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.Stats{}, ErrNoActiveUser
	}
	return calculator.UserStats(s.current.ID, s.records.All(), s.users, s.Today()), nil
}

// Leaderboard ranks every user for the current ISO week. It also returns the
// week key and the day the ranking was computed for.
func (s *Session) Leaderboard() ([]models.LeaderboardEntry, string, models.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()
	return calculator.WeeklyLeaderboard(s.records.All(), s.users, today), calculator.DateWeekKey(today), today
}

// ownedRecord returns the record if it belongs to the active user.
// Callers hold s.mu and have checked s.current.
func (s *Session) ownedRecord(id string) (models.SoulRecord, bool) {
	record, ok := s.records.Get(id)
	if !ok || record.UserID != s.current.ID {
		return models.SoulRecord{}, false
	}
	return record, true
}

// persist writes one slot in full. Failures are logged and counted; the
// in-memory state stays authoritative. The write outlives caller cancellation
// because the in-memory mutation has already happened.
func (s *Session) persist(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err == nil {
		err = s.store.Put(context.WithoutCancel(ctx), key, data)
	}
	if err != nil {
		slog.Warn("Failed to persist slot", "slot", key, "error", err)
		metrics.SlotWrites.WithLabelValues(key, "error").Inc()
		return
	}
	metrics.SlotWrites.WithLabelValues(key, "ok").Inc()
}
