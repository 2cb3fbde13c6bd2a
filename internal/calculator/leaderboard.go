package calculator

import (
	"slices"

	"github.com/mmynk/vcom/internal/models"
)

// WeeklyLeaderboard ranks users by the number of records preached during the
// ISO week containing reference.
//
// Algorithm:
// - Keep records whose DatePreached falls in the reference week
// - Count them per UserID
// - Emit one entry per user, in users order, zero-count users included
// - Stable sort by count descending; ties keep users order
//
// Records owned by IDs not present in users are not represented.
func WeeklyLeaderboard(records []models.SoulRecord, users []models.User, reference models.Date) []models.LeaderboardEntry {
	currentWeek := DateWeekKey(reference)

	counts := make(map[string]int)
	for _, r := range records {
		if DateWeekKey(r.DatePreached) == currentWeek {
			counts[r.UserID]++
		}
	}

	entries := make([]models.LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = models.LeaderboardEntry{
			UserID:    u.ID,
			UserName:  u.Name,
			SoulCount: counts[u.ID],
		}
	}

	slices.SortStableFunc(entries, func(a, b models.LeaderboardEntry) int {
		return b.SoulCount - a.SoulCount
	})
	return entries
}

// RankOf returns the 1-based position of userID in entries, or 0 if absent.
// Tied users get distinct positions in their stable order.
func RankOf(entries []models.LeaderboardEntry, userID string) int {
	for i, e := range entries {
		if e.UserID == userID {
			return i + 1
		}
	}
	return 0
}
