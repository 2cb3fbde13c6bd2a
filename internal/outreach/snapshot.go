package outreach

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mmynk/vcom/internal/metrics"
	"github.com/mmynk/vcom/internal/models"
	"github.com/mmynk/vcom/internal/storage"
)

// snapshot is the state restored from the persistence slots.
type snapshot struct {
	users   []models.User
	records []models.SoulRecord
	current *models.User
}

// loadSnapshot reads the three slots. A missing, unreadable or malformed slot
// falls back to its empty default; malformed entries inside a slot are
// dropped individually. Loading never fails.
func loadSnapshot(ctx context.Context, store storage.Store) snapshot {
	var snap snapshot

	byID := make(map[string]models.User)
	names := make(map[string]bool)
	readArray(ctx, store, storage.KeyUsers, func(v gjson.Result) bool {
		user, ok := decodeUser(v)
		if !ok {
			return false
		}
		key := strings.ToLower(user.Name)
		if _, dup := byID[user.ID]; dup || names[key] {
			return false
		}
		snap.users = append(snap.users, user)
		byID[user.ID] = user
		names[key] = true
		return true
	})

	seen := make(map[string]bool)
	readArray(ctx, store, storage.KeyRecords, func(v gjson.Result) bool {
		record, ok := decodeRecord(v)
		if !ok || seen[record.ID] {
			return false
		}
		if _, owned := byID[record.UserID]; !owned {
			return false
		}
		seen[record.ID] = true
		snap.records = append(snap.records, record)
		return true
	})

	if raw, ok := readSlot(ctx, store, storage.KeyCurrentUser); ok {
		current := gjson.ParseBytes(raw)
		if current.IsObject() {
			if user, known := byID[current.Get("id").String()]; known {
				snap.current = &user
			} else {
				slog.Warn("Stored active user is unknown, starting signed out",
					"slot", storage.KeyCurrentUser,
					"user_id", current.Get("id").String(),
				)
			}
		}
	}

	slog.Info("Snapshot loaded",
		"users", len(snap.users),
		"records", len(snap.records),
		"signed_in", snap.current != nil,
	)
	return snap
}

// readSlot returns the raw slot value if it exists and is valid JSON.
func readSlot(ctx context.Context, store storage.Store, key string) ([]byte, bool) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		slog.Warn("Failed to read slot, using empty default", "slot", key, "error", err)
		return nil, false
	}
	if !gjson.ValidBytes(raw) {
		slog.Warn("Slot is not valid JSON, using empty default", "slot", key)
		metrics.SnapshotEntriesDropped.WithLabelValues(key).Inc()
		return nil, false
	}
	return raw, true
}

// readArray walks a slot holding a JSON array, calling keep for each element.
// Elements for which keep returns false are counted as dropped.
func readArray(ctx context.Context, store storage.Store, key string, keep func(gjson.Result) bool) {
	raw, ok := readSlot(ctx, store, key)
	if !ok {
		return
	}

	parsed := gjson.ParseBytes(raw)
	if !parsed.IsArray() {
		slog.Warn("Slot is not an array, using empty default", "slot", key)
		metrics.SnapshotEntriesDropped.WithLabelValues(key).Inc()
		return
	}

	dropped := 0
	parsed.ForEach(func(_, v gjson.Result) bool {
		if !keep(v) {
			dropped++
		}
		return true
	})
	if dropped > 0 {
		slog.Warn("Dropped malformed entries", "slot", key, "count", dropped)
		metrics.SnapshotEntriesDropped.WithLabelValues(key).Add(float64(dropped))
	}
}

func decodeUser(v gjson.Result) (models.User, bool) {
	if !v.IsObject() {
		return models.User{}, false
	}
	id, idOK := nonEmptyString(v.Get("id"))
	name, nameOK := nonEmptyString(v.Get("name"))
	if !idOK || !nameOK {
		return models.User{}, false
	}

	user := models.User{ID: id, Name: name}
	if joined := v.Get("joinedAt"); joined.Exists() {
		if joined.Type != gjson.String {
			return models.User{}, false
		}
		t, err := time.Parse(time.RFC3339Nano, joined.Str)
		if err != nil {
			return models.User{}, false
		}
		user.JoinedAt = t
	}
	return user, true
}

func decodeRecord(v gjson.Result) (models.SoulRecord, bool) {
	if !v.IsObject() {
		return models.SoulRecord{}, false
	}
	id, idOK := nonEmptyString(v.Get("id"))
	userID, userOK := nonEmptyString(v.Get("userId"))
	if !idOK || !userOK {
		return models.SoulRecord{}, false
	}

	var preached models.Date
	if err := json.Unmarshal([]byte(v.Get("datePreached").Raw), &preached); err != nil || preached.IsZero() {
		return models.SoulRecord{}, false
	}

	days := v.Get("followUpDays")
	if days.Type != gjson.Number || days.Num != float64(int64(days.Num)) || days.Num < 0 || days.Num > MaxFollowUpDays {
		return models.SoulRecord{}, false
	}

	status := models.Status(v.Get("status").String())
	if !status.Valid() {
		return models.SoulRecord{}, false
	}

	for _, field := range []string{"name", "phone", "location", "churchRecommended", "notes"} {
		if f := v.Get(field); f.Exists() && f.Type != gjson.String {
			return models.SoulRecord{}, false
		}
	}

	return models.SoulRecord{
		ID:                id,
		UserID:            userID,
		Name:              v.Get("name").Str,
		Phone:             v.Get("phone").Str,
		Location:          v.Get("location").Str,
		ChurchRecommended: v.Get("churchRecommended").Str,
		DatePreached:      preached,
		FollowUpDays:      int(days.Int()),
		Status:            status,
		Notes:             v.Get("notes").Str,
	}, true
}

func nonEmptyString(v gjson.Result) (string, bool) {
	if v.Type != gjson.String || strings.TrimSpace(v.Str) == "" {
		return "", false
	}
	return v.Str, true
}
