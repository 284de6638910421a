package reminder

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// DueHour is the fixed local hour at which a milestone is considered due for
// notification purposes. The calendar feed uses its own start hour; the two
// are deliberately independent.
const DueHour = 14

// displayLayout renders instants for humans, e.g. "Jun 30, 2024, 2:00 PM".
const displayLayout = "Jan 2, 2006, 3:04 PM"

// Location resolves a timezone identifier, falling back to UTC on empty or
// invalid input. Reminder math must always produce some instant.
func Location(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SendInstant computes when a reminder fires: the due date at DueHour local
// time, minus offsetDays whole days. Offset 0 means a same-day send. The
// subtraction happens in calendar days, so the send lands at the same local
// hour even across DST boundaries.
func SendInstant(due civil.Date, offsetDays int, loc *time.Location) time.Time {
	d := due.AddDays(-offsetDays)
	return time.Date(d.Year, d.Month, d.Day, DueHour, 0, 0, 0, loc)
}

// FormatInZone formats an instant for display in the given timezone. On an
// invalid timezone identifier it returns fallback instead of failing; this
// runs in render paths that must always produce a string.
func FormatInZone(t time.Time, tz string, fallback string) string {
	if tz == "" {
		return fallback
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fallback
	}
	return t.In(loc).Format(displayLayout)
}

// DescribeOffset renders an offset-in-days as reminder wording
func DescribeOffset(offsetDays int) string {
	switch offsetDays {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", offsetDays)
	}
}
