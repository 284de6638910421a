package usecase

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/service/calendar"
)

// CalendarUseCase serves the per-organization ICS feed. The feed URL carries
// a shared secret; wrong or missing keys get an explicit rejection, never a
// partial or empty feed.
type CalendarUseCase struct {
	repo interfaces.Repository
}

func NewCalendarUseCase(repo interfaces.Repository) *CalendarUseCase {
	return &CalendarUseCase{repo: repo}
}

// Feed authorizes the request and materializes the organization's milestone
// calendar. Milestones without a due date are skipped by the generator.
func (u *CalendarUseCase) Feed(ctx context.Context, orgID types.OrgID, key string) (string, error) {
	prefs, err := u.repo.Org().GetPreferences(ctx, orgID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return "", goerr.Wrap(ErrFeedUnauthorized, "unknown organization", goerr.V("org_id", orgID))
		}
		return "", goerr.Wrap(err, "failed to load org preferences", goerr.V("org_id", orgID))
	}

	if !prefs.CalendarEnabled {
		return "", goerr.Wrap(ErrCalendarDisabled, "calendar feed disabled", goerr.V("org_id", orgID))
	}
	if prefs.CalendarSecret == "" || subtle.ConstantTimeCompare([]byte(key), []byte(prefs.CalendarSecret)) != 1 {
		return "", goerr.Wrap(ErrFeedUnauthorized, "invalid feed key", goerr.V("org_id", orgID))
	}

	grants, err := u.repo.Grant().List(ctx, orgID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list grants for feed", goerr.V("org_id", orgID))
	}

	input := calendar.FeedInput{
		OrgName:  prefs.Name,
		Timezone: prefs.Timezone,
	}
	for _, g := range grants {
		fg := calendar.FeedGrant{ID: g.ID, Title: g.Title}
		for _, m := range g.Milestones {
			fg.Milestones = append(fg.Milestones, calendar.FeedMilestone{
				Label:   m.Label,
				DueDate: m.DueDate,
			})
		}
		input.Grants = append(input.Grants, fg)
	}

	return calendar.GenerateFeed(input), nil
}
