// Package outreach owns the authoritative state of the campaign: the outreach
// records, the participants, and the active session.
package outreach

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mmynk/vcom/internal/metrics"
	"github.com/mmynk/vcom/internal/models"
)

const (
	// DefaultFollowUpDays is used when a new record does not specify an offset.
	DefaultFollowUpDays = 7

	// MaxFollowUpDays bounds the follow-up offset (roughly ten years).
	MaxFollowUpDays = 3650
)

// RecordSink receives the complete record collection after each mutation.
type RecordSink func(ctx context.Context, records []models.SoulRecord)

// RecordStore is the single owner of the outreach records. Every mutation
// replaces the collection wholesale, so a reader sees either the state before
// a mutation or the state after it.
type RecordStore struct {
	mu      sync.RWMutex
	records []models.SoulRecord

	knownUser func(id string) bool
	today     func() models.Date
	newID     func() string
	sink      RecordSink
}

// NewRecordStore creates a store seeded with records.
// knownUser resolves owner IDs, today supplies the creation date of new
// records, and sink (optional) is called with the new collection after every
// mutation.
func NewRecordStore(records []models.SoulRecord, knownUser func(string) bool, today func() models.Date, sink RecordSink) *RecordStore {
	if sink == nil {
		sink = func(context.Context, []models.SoulRecord) {}
	}
	return &RecordStore{
		records:   slices.Clone(records),
		knownUser: knownUser,
		today:     today,
		newID:     uuid.NewString,
		sink:      sink,
	}
}

// Add creates a record owned by ownerID, dated today with status new.
// The record is placed first in iteration order.
func (s *RecordStore) Add(ctx context.Context, in models.NewRecord, ownerID string) (models.SoulRecord, error) {
	if !s.knownUser(ownerID) {
		return models.SoulRecord{}, fmt.Errorf("owner %s: %w", ownerID, ErrUnknownUser)
	}
	if in.FollowUpDays < 0 || in.FollowUpDays > MaxFollowUpDays {
		return models.SoulRecord{}, fmt.Errorf("%d: %w", in.FollowUpDays, ErrInvalidFollowUpDays)
	}

	record := models.SoulRecord{
		ID:                s.newID(),
		UserID:            ownerID,
		Name:              in.Name,
		Phone:             in.Phone,
		Location:          in.Location,
		ChurchRecommended: in.ChurchRecommended,
		DatePreached:      s.today(),
		FollowUpDays:      in.FollowUpDays,
		Status:            models.StatusNew,
		Notes:             in.Notes,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.SoulRecord, 0, len(s.records)+1)
	next = append(next, record)
	next = append(next, s.records...)
	s.replace(ctx, next)

	metrics.RecordsCreated.Inc()
	return record, nil
}

// Delete removes the record with the given ID.
// It reports whether a record was removed; deleting an absent ID is a no-op.
func (s *RecordStore) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	next := slices.Concat(s.records[:idx], s.records[idx+1:])
	s.replace(ctx, next)

	metrics.RecordsDeleted.Inc()
	return true
}

// UpdateStatus sets the status of the record with the given ID, leaving every
// other field untouched. It reports whether the record exists. Setting the
// status a record already has changes nothing and writes nothing.
func (s *RecordStore) UpdateStatus(ctx context.Context, id string, status models.Status) (models.SoulRecord, bool, error) {
	if !status.Valid() {
		return models.SoulRecord{}, false, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.SoulRecord{}, false, nil
	}
	if s.records[idx].Status == status {
		return s.records[idx], true, nil
	}

	next := slices.Clone(s.records)
	next[idx].Status = status
	s.replace(ctx, next)

	metrics.StatusChanges.WithLabelValues(string(status)).Inc()
	return next[idx], true, nil
}

// Get returns the record with the given ID.
func (s *RecordStore) Get(id string) (models.SoulRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.SoulRecord{}, false
	}
	return s.records[idx], true
}

// AllFor returns the records owned by userID, in no particular order.
func (s *RecordStore) AllFor(userID string) []models.SoulRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.SoulRecord
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// All returns every record across all users.
func (s *RecordStore) All() []models.SoulRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.records)
}

func (s *RecordStore) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(r models.SoulRecord) bool {
		return r.ID == id
	})
}

// replace swaps in the new collection and hands it to the sink.
// Callers hold s.mu.
func (s *RecordStore) replace(ctx context.Context, next []models.SoulRecord) {
	s.records = next
	s.sink(ctx, next)
}
