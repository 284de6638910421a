package interfaces

import (
	"context"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// OrgRepository defines the interface for organization preferences access
type OrgRepository interface {
	// GetPreferences retrieves an organization's preferences
	GetPreferences(ctx context.Context, orgID types.OrgID) (*model.OrgPreferences, error)

	// PutPreferences creates or replaces an organization's preferences
	PutPreferences(ctx context.Context, prefs *model.OrgPreferences) error
}
