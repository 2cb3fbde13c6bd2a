package calculator

import "github.com/mmynk/vcom/internal/models"

// UserStats computes the counters for one user from the full record and user
// collections. Nothing is cached; callers recompute after every mutation.
func UserStats(userID string, records []models.SoulRecord, users []models.User, today models.Date) models.Stats {
	var stats models.Stats
	for _, r := range records {
		if r.UserID != userID {
			continue
		}
		stats.TotalRecords++
		switch r.Status {
		case models.StatusFollowing:
			stats.FollowingCount++
		case models.StatusEstablished:
			stats.EstablishedCount++
		}
		if IsDue(r, today) {
			stats.DueFollowUpCount++
		}
	}

	board := WeeklyLeaderboard(records, users, today)
	if rank := RankOf(board, userID); rank > 0 {
		stats.WeeklyRank = rank
		stats.WeeklyCount = board[rank-1].SoulCount
	}
	return stats
}
