package attendance

import (
	"math"
	"time"
)

// DayClass buckets a day's worked duration for reporting.
type DayClass string

const (
	ClassFullDay DayClass = "full_day"
	ClassHalfDay DayClass = "half_day"
	ClassAbsent  DayClass = "absent"
)

// Classify buckets worked minutes against the full-day threshold.
// Zero minutes counts as absent.
func Classify(minutes, fullDayMinutes int) DayClass {
	switch {
	case minutes >= fullDayMinutes:
		return ClassFullDay
	case minutes > 0:
		return ClassHalfDay
	default:
		return ClassAbsent
	}
}

// ClassifyRecord classifies a persisted record. An open session that was
// never checked out counts as a half day.
func ClassifyRecord(a *Attendance, fullDayMinutes int) DayClass {
	if a == nil || a.CheckIn == nil {
		return ClassAbsent
	}
	if a.CheckOut == nil {
		return ClassHalfDay
	}
	return Classify(Duration(*a.CheckIn, *a.CheckOut), fullDayMinutes)
}

// Duration returns the worked minutes between check-in and check-out,
// rounded to the nearest minute.
func Duration(checkIn, checkOut time.Time) int {
	return int(math.Round(checkOut.Sub(checkIn).Minutes()))
}
