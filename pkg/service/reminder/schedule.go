package reminder

import (
	"fmt"
	"sort"

	"cloud.google.com/go/civil"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// ScheduleInput is everything BuildSchedule needs. The function is pure:
// identical inputs always yield structurally identical output, which is what
// makes recomputation-on-every-edit correct instead of requiring diffing.
type ScheduleInput struct {
	GrantTitle     string
	MilestoneLabel string
	DueDate        civil.Date
	Channels       []types.Channel
	Offsets        []int
	Timezone       string
	UnsubscribeURL string
}

// BuildSchedule produces the deduplicated, time-ordered reminder schedule for
// one milestone.
//
// Offsets are deduplicated and sorted ascending; negative offsets mean "after
// the due date", which is unsupported, and are dropped rather than errored.
// One entry is produced per (channel, offset) pair, keyed
// "<channel>-<offset>" so repeated offsets cannot yield duplicate alerts.
// Entries come back sorted ascending by SendAt; ties keep insertion order
// (channel order as given, then offset order).
//
// Empty channels or offsets yield an empty schedule: that is the
// reminders-disabled state, not an error.
func BuildSchedule(in ScheduleInput) []model.ReminderEntry {
	offsets := normalizeOffsets(in.Offsets)
	if len(offsets) == 0 || len(in.Channels) == 0 {
		return []model.ReminderEntry{}
	}

	loc := Location(in.Timezone)
	dueInstant := SendInstant(in.DueDate, 0, loc)
	dueLabel := FormatInZone(dueInstant, in.Timezone, in.DueDate.String())

	entries := make([]model.ReminderEntry, 0, len(in.Channels)*len(offsets))
	seen := make(map[string]struct{}, len(in.Channels)*len(offsets))

	for _, ch := range in.Channels {
		for _, offset := range offsets {
			key := fmt.Sprintf("%s-%d", ch, offset)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			content := RenderTemplate(ch, TemplateContext{
				GrantTitle:     in.GrantTitle,
				MilestoneLabel: in.MilestoneLabel,
				DueDateLabel:   dueLabel,
				OffsetLabel:    DescribeOffset(offset),
				UnsubscribeURL: in.UnsubscribeURL,
			})

			entries = append(entries, model.ReminderEntry{
				ID:         key,
				Channel:    ch,
				OffsetDays: offset,
				SendAt:     SendInstant(in.DueDate, offset, loc),
				Subject:    content.Subject,
				Preview:    Preview(content.Body),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SendAt.Before(entries[j].SendAt)
	})

	return entries
}

// normalizeOffsets dedupes, drops negatives, and sorts ascending
func normalizeOffsets(offsets []int) []int {
	seen := make(map[int]struct{}, len(offsets))
	out := make([]int, 0, len(offsets))
	for _, o := range offsets {
		if o < 0 {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	sort.Ints(out)
	return out
}
