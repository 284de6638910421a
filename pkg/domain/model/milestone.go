package model

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// DefaultReminderOffsets is the product-level reminder cadence: T-30/14/7/3/1
// days before a milestone's due date plus a day-of send. Dedupe by
// (channel, offset) in the scheduler is what keeps repeated edits from
// producing duplicate alerts.
var DefaultReminderOffsets = []int{30, 14, 7, 3, 1, 0}

// Milestone is a dated checkpoint on a grant (LOI, Application, Report, or
// Custom) that can carry reminder configuration.
//
// ScheduledReminders is derived state: always a pure function of
// (DueDate, RemindersEnabled, ReminderChannels, org timezone, offsets).
// It is never edited directly, only recomputed in full.
type Milestone struct {
	ID                 types.MilestoneID
	Label              string
	Type               types.MilestoneType
	DueDate            *civil.Date
	RemindersEnabled   bool
	ReminderChannels   []types.Channel
	ScheduledReminders []ReminderEntry
}

// ReminderEntry is one scheduled reminder for a milestone. The ID doubles as
// the dedupe key: "<channel>-<offsetDays>". Subject is empty for SMS.
type ReminderEntry struct {
	ID         string
	Channel    types.Channel
	OffsetDays int
	SendAt     time.Time
	Subject    string
	Preview    string
}

// WantsReminders reports whether the milestone satisfies every precondition
// for schedule computation: a due date, reminders enabled, and at least one
// channel. When false, the schedule must be cleared to empty.
func (m *Milestone) WantsReminders() bool {
	return m.DueDate != nil && m.RemindersEnabled && len(m.ReminderChannels) > 0
}

// NewBuiltinMilestones provisions the non-removable milestone set created
// once at grant-save time. Reminders start disabled; channels come from the
// organization's default set.
func NewBuiltinMilestones(defaultChannels []types.Channel) []Milestone {
	builtins := types.BuiltinMilestoneTypes()
	milestones := make([]Milestone, 0, len(builtins))
	for _, t := range builtins {
		channels := make([]types.Channel, len(defaultChannels))
		copy(channels, defaultChannels)
		milestones = append(milestones, Milestone{
			ID:               types.NewMilestoneID(),
			Label:            t.Label(),
			Type:             t,
			ReminderChannels: channels,
		})
	}
	return milestones
}
