package reminder_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/m-mizutani/gt"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/service/reminder"
)

func TestSendInstant(t *testing.T) {
	due := civil.Date{Year: 2024, Month: time.December, Day: 31}

	t.Run("day-of send lands on the due date at the due hour", func(t *testing.T) {
		got := reminder.SendInstant(due, 0, time.UTC)
		gt.Value(t, got).Equal(time.Date(2024, time.December, 31, reminder.DueHour, 0, 0, 0, time.UTC))
	})

	t.Run("offset subtracts whole calendar days", func(t *testing.T) {
		got := reminder.SendInstant(due, 30, time.UTC)
		gt.Value(t, got).Equal(time.Date(2024, time.December, 1, reminder.DueHour, 0, 0, 0, time.UTC))
	})

	t.Run("offset crosses a month boundary", func(t *testing.T) {
		d := civil.Date{Year: 2024, Month: time.March, Day: 3}
		got := reminder.SendInstant(d, 7, time.UTC)
		gt.Value(t, got).Equal(time.Date(2024, time.February, 25, reminder.DueHour, 0, 0, 0, time.UTC))
	})

	t.Run("send keeps the local hour across a DST transition", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		gt.NoError(t, err).Required()

		// 2024-03-10 is the US spring-forward date; a 7-day offset from
		// 2024-03-14 lands before the transition.
		d := civil.Date{Year: 2024, Month: time.March, Day: 14}
		got := reminder.SendInstant(d, 7, loc)

		gt.Number(t, got.Hour()).Equal(reminder.DueHour)
		gt.Value(t, got.Location()).Equal(loc)
		gt.Number(t, got.Day()).Equal(7)
	})
}

func TestLocation(t *testing.T) {
	t.Run("empty timezone falls back to UTC", func(t *testing.T) {
		gt.Value(t, reminder.Location("")).Equal(time.UTC)
	})

	t.Run("invalid timezone falls back to UTC", func(t *testing.T) {
		gt.Value(t, reminder.Location("Not/AZone")).Equal(time.UTC)
	})

	t.Run("valid timezone resolves", func(t *testing.T) {
		loc := reminder.Location("America/Chicago")
		gt.Value(t, loc.String()).Equal("America/Chicago")
	})
}

func TestFormatInZone(t *testing.T) {
	instant := time.Date(2024, time.June, 30, 19, 0, 0, 0, time.UTC)

	t.Run("formats in the requested zone", func(t *testing.T) {
		got := reminder.FormatInZone(instant, "America/New_York", "fallback")
		gt.Value(t, got).Equal("Jun 30, 2024, 3:00 PM")
	})

	t.Run("empty timezone yields the fallback", func(t *testing.T) {
		got := reminder.FormatInZone(instant, "", "2024-06-30")
		gt.Value(t, got).Equal("2024-06-30")
	})

	t.Run("invalid timezone yields the fallback", func(t *testing.T) {
		got := reminder.FormatInZone(instant, "Mars/OlympusMons", "2024-06-30")
		gt.Value(t, got).Equal("2024-06-30")
	})
}

func TestDescribeOffset(t *testing.T) {
	gt.Value(t, reminder.DescribeOffset(0)).Equal("today")
	gt.Value(t, reminder.DescribeOffset(1)).Equal("tomorrow")
	gt.Value(t, reminder.DescribeOffset(5)).Equal("in 5 days")
	gt.Value(t, reminder.DescribeOffset(30)).Equal("in 30 days")
}
