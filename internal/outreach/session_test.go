package outreach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/vcom/internal/calculator"
	"github.com/mmynk/vcom/internal/models"
	"github.com/mmynk/vcom/internal/storage"
	"github.com/mmynk/vcom/internal/storage/memory"
)

// clock is a settable time source for tests.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(t *testing.T, store storage.Store) (*Session, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2025, time.March, 12, 9, 30, 0, 0, time.UTC)}
	s := NewSession(context.Background(), store, WithClock(c.Now), WithLocation(time.UTC))
	return s, c
}

func TestSession_SignIn(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, memory.New())

	alice, err := s.SignIn(ctx, "  Alice ")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if alice.Name != "Alice" || alice.ID == "" || alice.JoinedAt.IsZero() {
		t.Errorf("unexpected user: %+v", alice)
	}

	again, err := s.SignIn(ctx, "ALICE")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if again.ID != alice.ID {
		t.Error("case-insensitive sign-in should return the existing user")
	}
	if again.Name != "Alice" {
		t.Errorf("existing name must not change, got %q", again.Name)
	}

	if _, err := s.SignIn(ctx, "Bob"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if got := len(s.Users()); got != 2 {
		t.Errorf("expected 2 users, got %d", got)
	}
	current, ok := s.CurrentUser()
	if !ok || current.Name != "Bob" {
		t.Errorf("expected Bob active, got %+v", current)
	}

	if _, err := s.SignIn(ctx, "   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestSession_SignOutKeepsData(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, memory.New())

	s.SignIn(ctx, "Alice")
	s.AddRecord(ctx, models.NewRecord{Name: "John", FollowUpDays: 7})
	s.SignOut(ctx)

	if _, ok := s.CurrentUser(); ok {
		t.Error("expected no active user after sign-out")
	}
	if _, err := s.AddRecord(ctx, models.NewRecord{Name: "Mary"}); !errors.Is(err, ErrNoActiveUser) {
		t.Errorf("expected ErrNoActiveUser, got %v", err)
	}
	if _, err := s.Stats(); !errors.Is(err, ErrNoActiveUser) {
		t.Errorf("expected ErrNoActiveUser, got %v", err)
	}

	s.SignIn(ctx, "alice")
	records, _, err := s.FollowUpList()
	if err != nil {
		t.Fatalf("FollowUpList failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected records to survive sign-out, got %d", len(records))
	}
}

func TestSession_FollowUpLifecycle(t *testing.T) {
	ctx := context.Background()
	s, c := newTestSession(t, memory.New())

	s.SignIn(ctx, "Alice")
	record, err := s.AddRecord(ctx, models.NewRecord{Name: "John", FollowUpDays: 7})
	if err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}

	if calculator.IsDue(record, s.Today()) {
		t.Error("record should not be due on the day it was preached")
	}

	c.Advance(7 * 24 * time.Hour)
	stats, _ := s.Stats()
	if !calculator.IsDue(record, s.Today()) || stats.DueFollowUpCount != 1 {
		t.Errorf("record should be due a week later (due count %d)", stats.DueFollowUpCount)
	}

	established, err := s.UpdateStatus(ctx, record.ID, models.StatusEstablished)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	stats, _ = s.Stats()
	if calculator.IsDue(established, s.Today()) || stats.DueFollowUpCount != 0 {
		t.Error("established record must not be due")
	}
	if stats.EstablishedCount != 1 || stats.TotalRecords != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestSession_WeeklyLeaderboard(t *testing.T) {
	ctx := context.Background()
	s, c := newTestSession(t, memory.New())

	// Bob's first record lands in the previous ISO week.
	s.SignIn(ctx, "Bob")
	c.Advance(-7 * 24 * time.Hour)
	s.AddRecord(ctx, models.NewRecord{Name: "old"})
	c.Advance(7 * 24 * time.Hour)
	s.AddRecord(ctx, models.NewRecord{Name: "b1"})
	s.AddRecord(ctx, models.NewRecord{Name: "b2"})

	s.SignIn(ctx, "Alice")
	s.AddRecord(ctx, models.NewRecord{Name: "a1"})
	s.AddRecord(ctx, models.NewRecord{Name: "a2"})

	s.SignIn(ctx, "Carol")

	board, week, reference := s.Leaderboard()
	if week != "2025-W11" {
		t.Errorf("week key: expected 2025-W11, got %s", week)
	}
	if reference.String() != "2025-03-12" {
		t.Errorf("reference date: expected 2025-03-12, got %s", reference)
	}
	if len(board) != 3 {
		t.Fatalf("expected one entry per user, got %d", len(board))
	}
	if board[0].UserName != "Bob" || board[0].SoulCount != 2 {
		t.Errorf("rank 1: expected Bob with 2, got %+v", board[0])
	}
	if board[1].UserName != "Alice" || board[1].SoulCount != 2 {
		t.Errorf("rank 2: expected Alice with 2, got %+v", board[1])
	}
	if board[2].UserName != "Carol" || board[2].SoulCount != 0 {
		t.Errorf("rank 3: expected Carol with 0, got %+v", board[2])
	}
}

func TestSession_RecordOwnership(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, memory.New())

	s.SignIn(ctx, "Alice")
	alices, _ := s.AddRecord(ctx, models.NewRecord{Name: "John"})
	s.SignIn(ctx, "Bob")

	if _, err := s.UpdateStatus(ctx, alices.ID, models.StatusFollowing); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound for another user's record, got %v", err)
	}
	deleted, err := s.DeleteRecord(ctx, alices.ID, true)
	if err != nil || deleted {
		t.Errorf("expected no delete for another user's record, got deleted=%v err=%v", deleted, err)
	}

	s.SignIn(ctx, "Alice")
	records, _, _ := s.FollowUpList()
	if len(records) != 1 || records[0].Status != models.StatusNew {
		t.Errorf("record must be untouched, got %+v", records)
	}
}

func TestSession_DeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, memory.New())

	s.SignIn(ctx, "Alice")
	record, _ := s.AddRecord(ctx, models.NewRecord{Name: "John"})

	if _, err := s.DeleteRecord(ctx, record.ID, false); !errors.Is(err, ErrConfirmationRequired) {
		t.Errorf("expected ErrConfirmationRequired, got %v", err)
	}
	if stats, _ := s.Stats(); stats.TotalRecords != 1 {
		t.Error("unconfirmed delete must not remove the record")
	}

	for i, want := range []bool{true, false} {
		deleted, err := s.DeleteRecord(ctx, record.ID, true)
		if err != nil {
			t.Fatalf("DeleteRecord #%d failed: %v", i+1, err)
		}
		if deleted != want {
			t.Errorf("DeleteRecord #%d: expected deleted=%v, got %v", i+1, want, deleted)
		}
	}
	if stats, _ := s.Stats(); stats.TotalRecords != 0 {
		t.Errorf("expected no records, got %d", stats.TotalRecords)
	}
}

func TestSession_PersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s, _ := newTestSession(t, store)

	s.SignIn(ctx, "Alice")
	record, _ := s.AddRecord(ctx, models.NewRecord{Name: "John", Location: "Lagos", FollowUpDays: 3})
	s.UpdateStatus(ctx, record.ID, models.StatusFollowing)

	restored, _ := newTestSession(t, store)

	current, ok := restored.CurrentUser()
	if !ok || current.Name != "Alice" {
		t.Fatalf("expected Alice restored as active user, got %+v", current)
	}
	records, _, err := restored.FollowUpList()
	if err != nil {
		t.Fatalf("FollowUpList failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 restored record, got %d", len(records))
	}
	got := records[0]
	if !got.DatePreached.Equal(record.DatePreached) {
		t.Errorf("date preached: got %s, want %s", got.DatePreached, record.DatePreached)
	}
	got.DatePreached = record.DatePreached
	want := models.SoulRecord{
		ID:           record.ID,
		UserID:       current.ID,
		Name:         "John",
		Location:     "Lagos",
		DatePreached: record.DatePreached,
		FollowUpDays: 3,
		Status:       models.StatusFollowing,
	}
	if got != want {
		t.Errorf("restored record mismatch:\n got %+v\nwant %+v", got, want)
	}

	raw, err := store.Get(ctx, storage.KeyRecords)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !strings.Contains(string(raw), `"datePreached":"2025-03-12"`) {
		t.Errorf("expected date-only datePreached, got %s", raw)
	}
}

func TestSession_RestoreRecoversFromBadSlots(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		users       string
		records     string
		current     string
		wantUsers   int
		wantRecords int
		wantActive  bool
	}{
		{
			name:    "unparsable slots start empty",
			users:   `[{"id":`,
			records: `not json`,
			current: `{`,
		},
		{
			name:    "wrong top-level shapes start empty",
			users:   `{"id":"u1","name":"Alice"}`,
			records: `"records"`,
			current: `[]`,
		},
		{
			name: "invalid entries are dropped individually",
			users: `[
				{"id":"u1","name":"Alice","joinedAt":"2025-03-01T10:00:00Z"},
				{"id":"u2","name":""},
				{"id":"u3","name":"alice"},
				{"name":"NoID"},
				42
			]`,
			records: `[
				{"id":"r1","userId":"u1","name":"John","datePreached":"2025-03-10","followUpDays":7,"status":"new"},
				{"id":"r2","userId":"u1","datePreached":"2025-03-10","followUpDays":7,"status":"done"},
				{"id":"r3","userId":"u1","datePreached":"yesterday","followUpDays":7,"status":"new"},
				{"id":"r4","userId":"u1","datePreached":"2025-03-10","followUpDays":-2,"status":"new"},
				{"id":"r5","userId":"ghost","datePreached":"2025-03-10","followUpDays":1,"status":"new"},
				{"id":"r1","userId":"u1","datePreached":"2025-03-11","followUpDays":1,"status":"new"},
				{"id":"r6","userId":"u1","datePreached":"2025-03-10T15:04:05Z","followUpDays":1.5,"status":"new"},
				{"id":"r7","userId":"u1","name":7,"datePreached":"2025-03-10","followUpDays":1,"status":"new"}
			]`,
			current:     `{"id":"u1","name":"Alice"}`,
			wantUsers:   1,
			wantRecords: 1,
			wantActive:  true,
		},
		{
			name: "first of duplicate ids or names wins",
			users: `[
				{"id":"u1","name":"Alice"},
				{"id":"u1","name":"Bob"},
				{"id":"u2","name":"ALICE"},
				{"id":"u3","name":"Carol"}
			]`,
			records: `[
				{"id":"r1","userId":"u1","datePreached":"2025-03-10","followUpDays":7,"status":"new"},
				{"id":"r2","userId":"u2","datePreached":"2025-03-10","followUpDays":7,"status":"new"},
				{"id":"r3","userId":"u3","datePreached":"2025-03-10","followUpDays":7,"status":"new"}
			]`,
			current:     `{"id":"u2","name":"ALICE"}`,
			wantUsers:   2,
			wantRecords: 2,
		},
		{
			name:        "active user must be known",
			users:       `[{"id":"u1","name":"Alice"}]`,
			records:     `[]`,
			current:     `{"id":"u9","name":"Zed"}`,
			wantUsers:   1,
			wantRecords: 0,
		},
		{
			name:        "timestamps in datePreached keep the date",
			users:       `[{"id":"u1","name":"Alice"}]`,
			records:     `[{"id":"r1","userId":"u1","datePreached":"2025-03-10T15:04:05Z","followUpDays":0,"status":"established"}]`,
			current:     `null`,
			wantUsers:   1,
			wantRecords: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			store.Put(ctx, storage.KeyUsers, []byte(tt.users))
			store.Put(ctx, storage.KeyRecords, []byte(tt.records))
			store.Put(ctx, storage.KeyCurrentUser, []byte(tt.current))

			s, _ := newTestSession(t, store)

			if got := len(s.Users()); got != tt.wantUsers {
				t.Errorf("users: expected %d, got %d", tt.wantUsers, got)
			}
			board, _, _ := s.Leaderboard()
			if len(board) != tt.wantUsers {
				t.Errorf("leaderboard entries: expected %d, got %d", tt.wantUsers, len(board))
			}
			if got := len(s.records.All()); got != tt.wantRecords {
				t.Errorf("records: expected %d, got %d", tt.wantRecords, got)
			}
			if _, ok := s.CurrentUser(); ok != tt.wantActive {
				t.Errorf("active user: expected %v, got %v", tt.wantActive, ok)
			}
		})
	}
}

// failingStore accepts reads but rejects every write.
type failingStore struct{ storage.Store }

func (failingStore) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestSession_WriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, failingStore{memory.New()})

	if _, err := s.SignIn(ctx, "Alice"); err != nil {
		t.Fatalf("SignIn should succeed despite write failure: %v", err)
	}
	record, err := s.AddRecord(ctx, models.NewRecord{Name: "John"})
	if err != nil {
		t.Fatalf("AddRecord should succeed despite write failure: %v", err)
	}
	if _, err := s.UpdateStatus(ctx, record.ID, models.StatusFollowing); err != nil {
		t.Fatalf("UpdateStatus should succeed despite write failure: %v", err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalRecords != 1 || stats.FollowingCount != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
