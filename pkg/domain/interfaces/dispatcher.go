package interfaces

import (
	"context"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// ReminderDispatcher hands a milestone's recomputed schedule to the delivery
// collaborator (email/SMS providers live behind it). Entries are keyed by
// (channel, offsetDays), which the dispatcher can rely on to avoid
// double-sends when the same milestone is edited repeatedly.
type ReminderDispatcher interface {
	Enqueue(ctx context.Context, orgID types.OrgID, grantID types.GrantID, milestoneID types.MilestoneID, entries []model.ReminderEntry) error
}
