package calendar

import (
	"strings"
	"time"
	"unicode"

	"cloud.google.com/go/civil"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// EventHour is the local start hour for milestone calendar events. It is
// independent of the reminder due-hour: the event is an on-the-day
// placeholder while the reminder hour is notification timing.
const EventHour = 9

// eventDuration is the fixed length of a milestone event
const eventDuration = time.Hour

// utcLayout is the iCalendar UTC date-time form
const utcLayout = "20060102T150405Z"

// FeedInput is the projection of an organization's grants consumed by
// GenerateFeed. Only identity, titles, and milestone labels/due dates are
// needed; the generator is a stateless transformer over them.
type FeedInput struct {
	OrgName  string
	Timezone string
	Grants   []FeedGrant
}

// FeedGrant is one grant's contribution to the feed
type FeedGrant struct {
	ID         types.GrantID
	Title      string
	Milestones []FeedMilestone
}

// FeedMilestone is one milestone's contribution to the feed. A nil DueDate
// excludes the milestone from the feed entirely.
type FeedMilestone struct {
	Label   string
	DueDate *civil.Date
}

// GenerateFeed materializes an iCalendar document with one event per
// (grant, milestone) pair that has a due date. Regenerating the feed for the
// same input yields a byte-identical document: event UIDs are derived from
// grant ID and milestone label, and DTSTAMP reuses the event start instead of
// the wall clock, so calendar clients can deduplicate on refetch.
func GenerateFeed(in FeedInput) string {
	loc := location(in.Timezone)

	var lines []string
	lines = append(lines,
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Grant Tracker//Milestones//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:"+escapeText(in.OrgName+" Grant Milestones"),
	)
	if in.Timezone != "" {
		lines = append(lines, "X-WR-TIMEZONE:"+escapeText(in.Timezone))
	}

	for _, g := range in.Grants {
		for _, m := range g.Milestones {
			if m.DueDate == nil {
				continue
			}
			d := *m.DueDate
			start := time.Date(d.Year, d.Month, d.Day, EventHour, 0, 0, 0, loc)
			end := start.Add(eventDuration)

			lines = append(lines,
				"BEGIN:VEVENT",
				"UID:"+EventUID(g.ID, m.Label),
				"DTSTAMP:"+start.UTC().Format(utcLayout),
				"DTSTART:"+start.UTC().Format(utcLayout),
				"DTEND:"+end.UTC().Format(utcLayout),
				"SUMMARY:"+escapeText(m.Label+" · "+g.Title),
				"END:VEVENT",
			)
		}
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

// EventUID derives the deterministic event identifier for a grant milestone:
// grant ID plus the milestone label with whitespace replaced by hyphens.
func EventUID(grantID types.GrantID, milestoneLabel string) string {
	slug := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, milestoneLabel)
	return grantID.String() + "-" + slug
}

func location(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// escapeText escapes iCalendar TEXT values per RFC 5545 section 3.3.11
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
