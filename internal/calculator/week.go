package calculator

import (
	"fmt"
	"time"

	"github.com/mmynk/vcom/internal/models"
)

// WeekKey returns the ISO 8601 week identifier of the calendar day of t, in
// t's own location. The format is "<year>-W<week>" with no zero padding, for
// example "2025-W1".
//
// Weeks start on Monday and week 1 is the week containing the year's first
// Thursday, so days near January 1st may belong to the adjacent ISO year.
func WeekKey(t time.Time) string {
	return DateWeekKey(models.DateOf(t))
}

// DateWeekKey returns the ISO 8601 week identifier of d.
func DateWeekKey(d models.Date) string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-W%d", year, week)
}
