package dispatch

import (
	"context"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/logging"
)

// Logger is a ReminderDispatcher that only records what would be sent. It
// stands in for the delivery pipeline (Postmark/Twilio) in development and
// keeps the schedule hand-off path exercised end to end.
type Logger struct{}

var _ interfaces.ReminderDispatcher = &Logger{}

func NewLogger() *Logger {
	return &Logger{}
}

func (d *Logger) Enqueue(ctx context.Context, orgID types.OrgID, grantID types.GrantID, milestoneID types.MilestoneID, entries []model.ReminderEntry) error {
	for _, e := range entries {
		logging.From(ctx).Info("reminder scheduled",
			"org_id", orgID,
			"grant_id", grantID,
			"milestone_id", milestoneID,
			"entry_id", e.ID,
			"channel", e.Channel,
			"send_at", e.SendAt,
		)
	}
	return nil
}
