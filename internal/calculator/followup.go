package calculator

import (
	"slices"

	"github.com/mmynk/vcom/internal/models"
)

// IsDue reports whether a record needs a follow-up on today.
//
// A record is due once today reaches DatePreached + FollowUpDays. Established
// records are never due.
func IsDue(record models.SoulRecord, today models.Date) bool {
	if record.Status == models.StatusEstablished {
		return false
	}
	return !today.Before(record.DueDate())
}

// CountDue returns how many records are due on today.
func CountDue(records []models.SoulRecord, today models.Date) int {
	n := 0
	for _, r := range records {
		if IsDue(r, today) {
			n++
		}
	}
	return n
}

// SortForFollowUp returns a copy of records in presentation order: due records
// first, then by DatePreached descending. Records equal on both keys keep their
// input order.
func SortForFollowUp(records []models.SoulRecord, today models.Date) []models.SoulRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b models.SoulRecord) int {
		aDue, bDue := IsDue(a, today), IsDue(b, today)
		if aDue != bDue {
			if aDue {
				return -1
			}
			return 1
		}
		switch {
		case a.DatePreached.After(b.DatePreached):
			return -1
		case a.DatePreached.Before(b.DatePreached):
			return 1
		}
		return 0
	})
	return sorted
}
