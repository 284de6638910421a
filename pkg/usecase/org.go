package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// GetPreferences returns an organization's stored preferences
func (u *GrantUseCase) GetPreferences(ctx context.Context, orgID types.OrgID) (*model.OrgPreferences, error) {
	prefs, err := u.repo.Org().GetPreferences(ctx, orgID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrOrgNotFound, "organization not found", goerr.V("org_id", orgID))
		}
		return nil, goerr.Wrap(err, "failed to get org preferences", goerr.V("org_id", orgID))
	}
	return prefs, nil
}

// UpdatePreferences validates and stores an organization's preferences
func (u *GrantUseCase) UpdatePreferences(ctx context.Context, prefs *model.OrgPreferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	if err := u.repo.Org().PutPreferences(ctx, prefs); err != nil {
		return goerr.Wrap(err, "failed to put org preferences", goerr.V("org_id", prefs.OrgID))
	}
	return nil
}
