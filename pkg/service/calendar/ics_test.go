package calendar_test

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/m-mizutani/gt"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/service/calendar"
)

func TestGenerateFeed(t *testing.T) {
	due := civil.Date{Year: 2024, Month: time.December, Day: 31}
	grantID := types.NewGrantID()

	input := func() calendar.FeedInput {
		return calendar.FeedInput{
			OrgName:  "Acme Nonprofit",
			Timezone: "America/New_York",
			Grants: []calendar.FeedGrant{
				{
					ID:    grantID,
					Title: "Community Health Initiative",
					Milestones: []calendar.FeedMilestone{
						{Label: "Application", DueDate: &due},
						{Label: "Report", DueDate: nil},
					},
				},
			},
		}
	}

	t.Run("feed is a well-formed calendar with CRLF line endings", func(t *testing.T) {
		feed := calendar.GenerateFeed(input())

		gt.Bool(t, strings.HasPrefix(feed, "BEGIN:VCALENDAR\r\n")).True()
		gt.Bool(t, strings.HasSuffix(feed, "END:VCALENDAR\r\n")).True()
		gt.Bool(t, strings.Contains(feed, "VERSION:2.0")).True()
		gt.Bool(t, strings.Contains(feed, "X-WR-CALNAME:Acme Nonprofit Grant Milestones")).True()
		gt.Bool(t, strings.Contains(feed, "X-WR-TIMEZONE:America/New_York")).True()

		// No bare LF lines
		for _, line := range strings.Split(strings.TrimSuffix(feed, "\r\n"), "\r\n") {
			gt.Bool(t, strings.Contains(line, "\n")).False()
		}
	})

	t.Run("milestones without a due date are excluded", func(t *testing.T) {
		feed := calendar.GenerateFeed(input())

		gt.Number(t, strings.Count(feed, "BEGIN:VEVENT")).Equal(1)
		gt.Bool(t, strings.Contains(feed, "SUMMARY:Application · Community Health Initiative")).True()
		gt.Bool(t, strings.Contains(feed, "Report")).False()
	})

	t.Run("event starts at nine local and runs one hour", func(t *testing.T) {
		feed := calendar.GenerateFeed(input())

		// 9:00 AM Eastern on Dec 31 is 14:00 UTC (EST, UTC-5)
		gt.Bool(t, strings.Contains(feed, "DTSTART:20241231T140000Z")).True()
		gt.Bool(t, strings.Contains(feed, "DTEND:20241231T150000Z")).True()
	})

	t.Run("regeneration yields a byte-identical document", func(t *testing.T) {
		first := calendar.GenerateFeed(input())
		second := calendar.GenerateFeed(input())
		gt.Value(t, second).Equal(first)
	})

	t.Run("empty timezone falls back to UTC and omits the timezone property", func(t *testing.T) {
		in := input()
		in.Timezone = ""

		feed := calendar.GenerateFeed(in)
		gt.Bool(t, strings.Contains(feed, "X-WR-TIMEZONE")).False()
		gt.Bool(t, strings.Contains(feed, "DTSTART:20241231T090000Z")).True()
	})

	t.Run("summary text is escaped per RFC 5545", func(t *testing.T) {
		in := input()
		in.Grants[0].Title = "Health, Housing; Hope"

		feed := calendar.GenerateFeed(in)
		gt.Bool(t, strings.Contains(feed, `Health\, Housing\; Hope`)).True()
	})

	t.Run("feed with no grants still has the calendar wrapper", func(t *testing.T) {
		in := input()
		in.Grants = nil

		feed := calendar.GenerateFeed(in)
		gt.Number(t, strings.Count(feed, "BEGIN:VEVENT")).Equal(0)
		gt.Bool(t, strings.Contains(feed, "BEGIN:VCALENDAR")).True()
	})
}

func TestEventUID(t *testing.T) {
	id := types.NewGrantID()

	t.Run("UID combines grant ID and hyphenated label", func(t *testing.T) {
		uid := calendar.EventUID(id, "Letter of Intent")
		gt.Value(t, uid).Equal(id.String() + "-Letter-of-Intent")
	})

	t.Run("identical inputs always derive the same UID", func(t *testing.T) {
		gt.Value(t, calendar.EventUID(id, "Application")).Equal(calendar.EventUID(id, "Application"))
	})

	t.Run("different labels derive different UIDs", func(t *testing.T) {
		gt.Value(t, calendar.EventUID(id, "Application")).NotEqual(calendar.EventUID(id, "Report"))
	})
}
