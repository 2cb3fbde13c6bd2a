package models

// LeaderboardEntry is one participant's count for a week window.
// Derived on demand, never persisted.
type LeaderboardEntry struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	SoulCount int    `json:"soulCount"`
}

// Stats are the derived counters shown to the active user.
type Stats struct {
	TotalRecords     int
	FollowingCount   int
	EstablishedCount int
	DueFollowUpCount int

	// WeeklyCount is the user's leaderboard count for the current week.
	WeeklyCount int

	// WeeklyRank is the user's 1-based position on the current leaderboard,
	// or 0 when the user is not on it.
	WeeklyRank int
}
